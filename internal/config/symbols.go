package config

import (
	"regexp"
	"strings"
)

// MaxSymbols caps a single watchlist.
const MaxSymbols = 100

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=^]{0,14}$`)

// ParseSymbols splits a comma-separated list, trims and upper-cases each entry
// and drops empty ones. Malformed or repeated symbols are rejected.
func ParseSymbols(raw string) ([]string, error) {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToUpper(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
	}
	if err := ValidateSymbols(symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// ValidateSymbols checks a normalized watchlist.
func ValidateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return invalid("symbol list is empty")
	}
	if len(symbols) > MaxSymbols {
		return invalid("at most %d symbols are allowed, got %d", MaxSymbols, len(symbols))
	}
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if !symbolPattern.MatchString(s) {
			return invalid("malformed symbol %q", s)
		}
		if seen[s] {
			return invalid("duplicate symbol %q", s)
		}
		seen[s] = true
	}
	return nil
}

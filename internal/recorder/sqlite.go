package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"StockScreener/internal/model"
)

// SQLiteRecorder persists the trade log to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.SugaredLogger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infow("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trade_log (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			id           TEXT NOT NULL UNIQUE,
			created_at   INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			entry_price  REAL NOT NULL,
			quantity     INTEGER NOT NULL,
			target       REAL,
			stop_loss    REAL,
			score        INTEGER,
			notional     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trade_symbol ON trade_log(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Append(ctx context.Context, entry *model.TradeLogEntry) error {
	if err := prepare(entry); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO trade_log
		(id, created_at, symbol, entry_price, quantity, target, stop_loss, score, notional)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		entry.ID, entry.CreatedAt.UnixMilli(), entry.Symbol, entry.EntryPrice, entry.Quantity,
		entry.Target, entry.StopLoss, entry.Score, entry.Notional().StringFixed(2),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return fmt.Errorf("entry %s already exists: %w", entry.ID, ErrInvalidTrade)
	}
	return err
}

func (r *SQLiteRecorder) List(ctx context.Context) ([]model.TradeLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, symbol, entry_price, quantity, target, stop_loss, score
		FROM trade_log ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query trade log: %w", err)
	}
	defer rows.Close()

	var entries []model.TradeLogEntry
	for rows.Next() {
		var (
			e         model.TradeLogEntry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Symbol, &e.EntryPrice, &e.Quantity, &e.Target, &e.StopLoss, &e.Score); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

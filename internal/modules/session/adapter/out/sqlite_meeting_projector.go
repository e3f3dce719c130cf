package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pitchperfect/internal/modules/session/domain"
	sessionout "pitchperfect/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteMeetingProjector struct {
	db *sql.DB
}

var _ sessionout.MeetingIndexProjector = (*SQLiteMeetingProjector)(nil)

func NewSQLiteMeetingProjector(dbPath string) (*SQLiteMeetingProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	p := &SQLiteMeetingProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLiteMeetingProjector) Close() error {
	return p.db.Close()
}

func (p *SQLiteMeetingProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS meetings (
  filename TEXT PRIMARY KEY,
  customer TEXT NOT NULL,
  meeting_start TEXT NOT NULL,
  turns INTEGER NOT NULL,
  evaluations INTEGER NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_customer_start ON meetings(customer, meeting_start);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create meetings table: %w", err)
	}
	return nil
}

func (p *SQLiteMeetingProjector) Upsert(ctx context.Context, entry domain.IndexEntry) error {
	const stmt = `
INSERT INTO meetings (filename, customer, meeting_start, turns, evaluations, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(filename) DO UPDATE SET
  customer=excluded.customer,
  meeting_start=excluded.meeting_start,
  turns=excluded.turns,
  evaluations=excluded.evaluations,
  updated_at=excluded.updated_at;
`
	_, err := p.db.ExecContext(ctx, stmt,
		entry.Filename,
		entry.Customer,
		entry.MeetingStart,
		entry.Turns,
		entry.Evaluations,
		entry.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert meeting index: %w", err)
	}
	return nil
}

// History lists indexed meetings newest first. An empty customer matches
// every customer.
func (p *SQLiteMeetingProjector) History(ctx context.Context, customer string, limit int) ([]domain.IndexEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.db.QueryContext(ctx, `
SELECT filename, customer, meeting_start, turns, evaluations, updated_at
FROM meetings
WHERE ? = '' OR customer = ?
ORDER BY meeting_start DESC, filename ASC
LIMIT ?;
`, customer, customer, limit)
	if err != nil {
		return nil, fmt.Errorf("query meeting history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.IndexEntry, 0)
	for rows.Next() {
		var entry domain.IndexEntry
		var updated string
		if err := rows.Scan(&entry.Filename, &entry.Customer, &entry.MeetingStart, &entry.Turns, &entry.Evaluations, &updated); err != nil {
			return nil, fmt.Errorf("scan meeting history: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, updated); err == nil {
			entry.UpdatedAt = parsed
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting history: %w", err)
	}
	return out, nil
}

func (p *SQLiteMeetingProjector) Reset(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM meetings;`); err != nil {
		return fmt.Errorf("reset meeting index: %w", err)
	}
	return nil
}

package imglog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no log entry matches a lookup.
var ErrNotFound = errors.New("log entry not found")

// maxPageLimit caps a single page regardless of what the caller asks for.
const maxPageLimit = 200

// defaultPageLimit applies when the caller passes no limit.
const defaultPageLimit = 30

// Repository handles all img_log database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Append inserts a new log entry. The log is append-only from the
// service's perspective; rows are never updated.
func (r *Repository) Append(ctx context.Context, e *LogEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO img_log (id, url, provider, filename, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.URL, e.Provider, e.Filename, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append log entry %q: %w", e.ID, err)
	}
	return nil
}

// LatestByFilename returns the newest entry bearing the logical
// filename. Older entries under the same name stay in the log but
// become unreachable by name (last-write-wins).
func (r *Repository) LatestByFilename(ctx context.Context, filename string) (*LogEntry, error) {
	e := &LogEntry{}
	err := r.db.QueryRow(ctx,
		`SELECT id, url, provider, filename, created_at
		 FROM img_log WHERE filename = $1
		 ORDER BY created_at DESC LIMIT 1`,
		filename,
	).Scan(&e.ID, &e.URL, &e.Provider, &e.Filename, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest by filename: %w", err)
	}
	return e, nil
}

// Page returns entries ordered by created_at descending. cursor, when
// positive, is an exclusive upper bound on created_at; providerFilter,
// when non-empty, restricts to that raw provider tag. nextCursor is
// the created_at of the last returned item, or 0 when the page came
// back short (end of log).
func (r *Repository) Page(ctx context.Context, providerFilter string, cursor int64, limit int) ([]LogEntry, int64, error) {
	limit = clampLimit(limit)

	query := `SELECT id, url, provider, filename, created_at FROM img_log`
	args := []any{}
	where := ""
	if providerFilter != "" {
		args = append(args, providerFilter)
		where = fmt.Sprintf(" WHERE provider = $%d", len(args))
	}
	if cursor > 0 {
		args = append(args, cursor)
		if where == "" {
			where = fmt.Sprintf(" WHERE created_at < $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND created_at < $%d", len(args))
		}
	}
	args = append(args, limit)
	query += where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page log entries: %w", err)
	}
	defer rows.Close()

	items := make([]LogEntry, 0, limit)
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.URL, &e.Provider, &e.Filename, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan log entry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("page log entries: %w", err)
	}

	return items, pageCursor(items, limit), nil
}

// clampLimit applies the default and the hard cap to a requested page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

// pageCursor derives the next-page cursor: the created_at of the last
// item on a full page, or 0 when the page came back short.
func pageCursor(items []LogEntry, limit int) int64 {
	if len(items) < limit {
		return 0
	}
	return items[len(items)-1].CreatedAt
}

// CountOnDay reports how many entries were created on the calendar day
// of the given time, in its location. Feeds the daily sequence namer.
func (r *Repository) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM img_log WHERE created_at >= $1 AND created_at < $2`,
		start.UnixMilli(), end.UnixMilli(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries on %s: %w", start.Format("2006-01-02"), err)
	}
	return n, nil
}

// DeleteByIDs removes the given entries and returns how many rows went
// away. Deletion is an administrative operation; resolution correctness
// never depends on it.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM img_log WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete log entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

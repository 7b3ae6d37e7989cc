package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GetSummary returns the stored summary for key unless it has expired.
func (d *Database) GetSummary(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, nil
	}

	query := "select summary from summaries where cache_key = ? and expires_at > ?"

	var summary string
	err := d.db.QueryRowContext(ctx, query, key, d.now().Unix()).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to execute query: %w", err)
	}

	return summary, true, nil
}

func (d *Database) PutSummary(
	ctx context.Context,
	key string,
	summary string,
	ttl time.Duration,
) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("cache key is empty")
	}

	if strings.TrimSpace(summary) == "" {
		return errors.New("summary is empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("ttl %s must be positive", ttl)
	}

	now := d.now()
	query := `insert into summaries (cache_key, summary, created_at, expires_at)
		values (?, ?, ?, ?)
		on conflict (cache_key) do update set
			summary = excluded.summary,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`

	_, err := d.db.ExecContext(ctx, query, key, summary, now.Unix(), now.Add(ttl).Unix())

	return err
}

// DeleteExpiredSummaries removes rows past their expiry and reports how many
// were removed.
func (d *Database) DeleteExpiredSummaries(ctx context.Context) (int64, error) {
	query := "delete from summaries where expires_at <= ?"

	res, err := d.db.ExecContext(ctx, query, d.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return n, nil
}

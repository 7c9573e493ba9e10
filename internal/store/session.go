package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type sessionRepo struct {
	drv *entsql.Driver
}

func (r *sessionRepo) Append(ctx context.Context, rec SessionRecord) error {
	review := 0
	if rec.Review {
		review = 1
	}
	q, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns("id", "mode", "review", "score", "total", "grade", "started_at", "ended_at").
		Values(
			rec.ID,
			rec.Mode,
			review,
			rec.Score,
			rec.Total,
			rec.Grade,
			rec.StartedAt.UTC().Format(time.RFC3339Nano),
			rec.EndedAt.UTC().Format(time.RFC3339Nano),
		).
		Query()

	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("append session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "mode", "review", "score", "total", "grade", "started_at", "ended_at").
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("ended_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec            SessionRecord
			review         int
			started, ended string
		)
		if err := rows.Scan(&rec.ID, &rec.Mode, &review, &rec.Score, &rec.Total, &rec.Grade, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Review = review != 0
		var err error
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

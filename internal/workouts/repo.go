package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Schema creates the workout table. Dates are stored verbatim, exercises as JSONB.
const Schema = `
CREATE TABLE IF NOT EXISTS public.workout
(
    id         SERIAL PRIMARY KEY,
    owner_id   VARCHAR     NOT NULL,
    name       VARCHAR     NOT NULL,
    date       VARCHAR     NOT NULL,
    exercises  JSONB       NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_workout_owner_id ON public.workout (owner_id);
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.schema")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if _, err = r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create workout schema: %w", err)
	}
	return nil
}

func (r *Repo) Add(ctx context.Context, record analytics.WorkoutRecord) (_ *analytics.WorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("owner", record.OwnerID))

	if record.Exercises == nil {
		record.Exercises = []analytics.ExerciseEntry{}
	}
	exercisesJson, err := json.Marshal(record.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO workout (owner_id, name, date, exercises)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		record.OwnerID,
		record.Name,
		record.Date,
		string(exercisesJson),
	).Scan(&record.ID)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *analytics.WorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, date, exercises
		FROM workout
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrWorkoutNotFound
	}

	return &records[0], nil
}

// ListByOwner returns the owner's workouts in insertion order.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) (_ []analytics.WorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("owner", ownerID))

	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, date, exercises
		FROM workout
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(records)))

	return records, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("owner", ownerID))
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM workout
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	return nil
}

func rows2records(rows pgx.Rows) ([]analytics.WorkoutRecord, error) {
	defer rows.Close()

	records := make([]analytics.WorkoutRecord, 0)
	for rows.Next() {
		var record analytics.WorkoutRecord
		var exercisesJson []byte
		if err := rows.Scan(
			&record.ID,
			&record.OwnerID,
			&record.Name,
			&record.Date,
			&exercisesJson,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(exercisesJson, &record.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of workout %d: %w", record.ID, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

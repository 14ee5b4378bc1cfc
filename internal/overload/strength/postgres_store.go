package strength

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/overload/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*PostgresStore)(nil)

const selectRecordsSQL = `
	SELECT id, user_id, exercise_id, exercise_name, performed_at, weight, reps, effort, estimated_1rm, is_pr
	FROM strength_record`

// PostgresStore keeps records in the strength_record table. Appends run in a
// transaction holding an advisory lock on the (user, exercise) key.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

func (s *PostgresStore) Append(ctx context.Context, key Key, build BuildFunc) (_ Record, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("postgres store: rollback: %s", rbErr)
		}
	}()

	if _, err := tx.Exec(
		ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		key.UserID+"||"+key.ExerciseID,
	); err != nil {
		return Record{}, fmt.Errorf("advisory lock: %w", err)
	}

	rows, err := tx.Query(
		ctx,
		selectRecordsSQL+` WHERE user_id = $1 AND exercise_id = $2 ORDER BY seq`,
		key.UserID, key.ExerciseID,
	)
	if err != nil {
		return Record{}, err
	}
	history, err := scanRecords(rows)
	if err != nil {
		return Record{}, err
	}

	rec, err := build(history)
	if err != nil {
		return Record{}, err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO strength_record
			(id, user_id, exercise_id, exercise_name, performed_at, weight, reps, effort, estimated_1rm, is_pr)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		rec.ID, rec.UserID, rec.ExerciseID, rec.ExerciseName, rec.Timestamp,
		rec.Weight, rec.Reps, rec.Effort, rec.EstimatedOneRepMax, rec.IsPR,
	); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return Record{}, fmt.Errorf("insert record %s: %w", rec.ID, ErrDuplicateRecord)
		}
		return Record{}, fmt.Errorf("insert record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, fmt.Errorf("commit: %w", err)
	}

	return rec, nil
}

func (s *PostgresStore) History(ctx context.Context, key Key) ([]Record, error) {
	rows, err := s.db.Query(
		ctx,
		selectRecordsSQL+` WHERE user_id = $1 AND exercise_id = $2 ORDER BY seq`,
		key.UserID, key.ExerciseID,
	)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (s *PostgresStore) UserRecords(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.Query(
		ctx,
		selectRecordsSQL+` WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.ExerciseID, &rec.ExerciseName, &rec.Timestamp,
			&rec.Weight, &rec.Reps, &rec.Effort, &rec.EstimatedOneRepMax, &rec.IsPR,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

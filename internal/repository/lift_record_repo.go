package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

type LiftRecordRepository struct {
	db DBTX
}

func NewLiftRecordRepository(db DBTX) *LiftRecordRepository {
	return &LiftRecordRepository{db: db}
}

type AppendLiftRecordInput struct {
	UserID       string
	Exercise     string
	Weight       float64
	Reps         int
	EstimatedMax float64
	Notes        string
}

// Append writes a new lift record with a store-assigned id and server
// timestamp. Records are never updated afterwards.
func (r *LiftRecordRepository) Append(ctx context.Context, input AppendLiftRecordInput) (*models.LiftRecord, error) {
	query := `
		INSERT INTO lift_records (id, user_id, exercise, weight, reps, estimated_max, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, exercise, weight, reps, estimated_max, date, notes
	`
	var record models.LiftRecord
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		input.UserID,
		input.Exercise,
		input.Weight,
		input.Reps,
		input.EstimatedMax,
		input.Notes,
	).Scan(
		&record.ID,
		&record.UserID,
		&record.Exercise,
		&record.Weight,
		&record.Reps,
		&record.EstimatedMax,
		&record.Date,
		&record.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *LiftRecordRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.LiftRecord, error) {
	query := `
		SELECT id, user_id, exercise, weight, reps, estimated_max, date, notes
		FROM lift_records
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.LiftRecord{}
	for rows.Next() {
		var record models.LiftRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Exercise,
			&record.Weight,
			&record.Reps,
			&record.EstimatedMax,
			&record.Date,
			&record.Notes,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *LiftRecordRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lift_records WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

package database

import (
	"context"
	"database/sql"

	"github.com/restroiq/crm-api/internal/entity"
)

const followUpColumns = `follow_up_id, lead_id, follow_up_date, status, notes,
	next_follow_up_date, created_at`

type FollowUpRepository struct {
	DB *sql.DB
}

func NewFollowUpRepository(db *sql.DB) *FollowUpRepository {
	return &FollowUpRepository{DB: db}
}

func (r *FollowUpRepository) Create(ctx context.Context, fu *entity.FollowUp) error {
	query := `
		INSERT INTO follow_ups (` + followUpColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		fu.FollowUpID,
		fu.LeadID,
		fu.FollowUpDate,
		fu.Status,
		nullString(fu.Notes),
		fu.NextFollowUpDate,
		fu.CreatedAt,
	)
	return err
}

func (r *FollowUpRepository) FindByLeadID(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	query := `
		SELECT ` + followUpColumns + `
		FROM follow_ups
		WHERE lead_id = $1
		ORDER BY follow_up_date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := make([]entity.FollowUp, 0)
	for rows.Next() {
		fu, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, *fu)
	}
	return followUps, rows.Err()
}

func scanFollowUp(row rowScanner) (*entity.FollowUp, error) {
	var fu entity.FollowUp
	var notes sql.NullString
	var next sql.NullTime

	err := row.Scan(
		&fu.FollowUpID,
		&fu.LeadID,
		&fu.FollowUpDate,
		&fu.Status,
		&notes,
		&next,
		&fu.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	fu.Notes = notes.String
	if next.Valid {
		d := entity.DateOf(next.Time)
		fu.NextFollowUpDate = &d
	}
	return &fu, nil
}

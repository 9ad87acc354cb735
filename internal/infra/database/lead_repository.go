package database

import (
	"context"
	"database/sql"

	"github.com/restroiq/crm-api/internal/entity"
)

const leadColumns = `lead_id, restaurant_name, contact_person, phone, city, source,
	current_status, lead_stage, next_follow_up_date, last_follow_up_date,
	created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		lead.LeadID,
		lead.RestaurantName,
		nullString(lead.ContactPerson),
		lead.Phone,
		lead.City,
		lead.Source,
		lead.CurrentStatus,
		lead.LeadStage,
		lead.NextFollowUpDate,
		lead.LastFollowUpDate,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	return err
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			restaurant_name = $2,
			contact_person = $3,
			phone = $4,
			city = $5,
			source = $6,
			current_status = $7,
			lead_stage = $8,
			next_follow_up_date = $9,
			last_follow_up_date = $10,
			updated_at = $11
		WHERE lead_id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		lead.LeadID,
		lead.RestaurantName,
		nullString(lead.ContactPerson),
		lead.Phone,
		lead.City,
		lead.Source,
		lead.CurrentStatus,
		lead.LeadStage,
		lead.NextFollowUpDate,
		lead.LastFollowUpDate,
		lead.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

// Delete removes the lead together with its follow-up history in one
// transaction. The FK cascade would cover Postgres, but the explicit
// deletes keep both backends on the same behavior.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM follow_ups WHERE lead_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE lead_id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLeadNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var contact, source sql.NullString
	var next, last sql.NullTime

	err := row.Scan(
		&l.LeadID,
		&l.RestaurantName,
		&contact,
		&l.Phone,
		&l.City,
		&source,
		&l.CurrentStatus,
		&l.LeadStage,
		&next,
		&last,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.ContactPerson = contact.String
	l.Source = source.String
	if next.Valid {
		d := entity.DateOf(next.Time)
		l.NextFollowUpDate = &d
	}
	if last.Valid {
		t := last.Time
		l.LastFollowUpDate = &t
	}
	return &l, nil
}

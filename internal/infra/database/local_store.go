package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/restroiq/crm-api/internal/entity"
)

// Local (SQLite) flavor of the repositories. Everything is stored as TEXT:
// timestamps as RFC 3339, dates as YYYY-MM-DD. Unlike the Postgres pair,
// the follow-up repository here can commit the follow-up and the lead
// snapshot in a single transaction (see LogFollowUp).

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type LocalLeadRepository struct {
	DB *sql.DB
}

func NewLocalLeadRepository(db *sql.DB) *LocalLeadRepository {
	return &LocalLeadRepository{DB: db}
}

func (r *LocalLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return insertLocalLead(ctx, r.DB, lead)
}

func insertLocalLead(ctx context.Context, db execer, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		lead.LeadID,
		lead.RestaurantName,
		nullString(lead.ContactPerson),
		lead.Phone,
		lead.City,
		lead.Source,
		lead.CurrentStatus,
		lead.LeadStage,
		dateText(lead.NextFollowUpDate),
		timeText(lead.LastFollowUpDate),
		lead.CreatedAt.Format(time.RFC3339Nano),
		lead.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (r *LocalLeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLocalLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LocalLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE lead_id = ?`, id)
	lead, err := scanLocalLead(row)
	if err == sql.ErrNoRows {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LocalLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return updateLocalLead(ctx, r.DB, lead)
}

func updateLocalLead(ctx context.Context, db execer, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			restaurant_name = ?,
			contact_person = ?,
			phone = ?,
			city = ?,
			source = ?,
			current_status = ?,
			lead_stage = ?,
			next_follow_up_date = ?,
			last_follow_up_date = ?,
			updated_at = ?
		WHERE lead_id = ?
	`
	res, err := db.ExecContext(ctx, query,
		lead.RestaurantName,
		nullString(lead.ContactPerson),
		lead.Phone,
		lead.City,
		lead.Source,
		lead.CurrentStatus,
		lead.LeadStage,
		dateText(lead.NextFollowUpDate),
		timeText(lead.LastFollowUpDate),
		lead.UpdatedAt.Format(time.RFC3339Nano),
		lead.LeadID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LocalLeadRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM follow_ups WHERE lead_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE lead_id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLeadNotFound
	}
	return tx.Commit()
}

type LocalFollowUpRepository struct {
	DB *sql.DB
}

func NewLocalFollowUpRepository(db *sql.DB) *LocalFollowUpRepository {
	return &LocalFollowUpRepository{DB: db}
}

func (r *LocalFollowUpRepository) Create(ctx context.Context, fu *entity.FollowUp) error {
	return insertLocalFollowUp(ctx, r.DB, fu)
}

func insertLocalFollowUp(ctx context.Context, db execer, fu *entity.FollowUp) error {
	query := `
		INSERT INTO follow_ups (` + followUpColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		fu.FollowUpID,
		fu.LeadID,
		fu.FollowUpDate.Format(time.RFC3339Nano),
		fu.Status,
		nullString(fu.Notes),
		dateText(fu.NextFollowUpDate),
		fu.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (r *LocalFollowUpRepository) FindByLeadID(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	query := `
		SELECT ` + followUpColumns + `
		FROM follow_ups
		WHERE lead_id = ?
		ORDER BY follow_up_date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	followUps := make([]entity.FollowUp, 0)
	for rows.Next() {
		fu, err := scanLocalFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, *fu)
	}
	return followUps, rows.Err()
}

// LogFollowUp writes the interaction and the updated lead snapshot in one
// transaction; either both land or neither does.
func (r *LocalFollowUpRepository) LogFollowUp(ctx context.Context, fu *entity.FollowUp, lead *entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertLocalFollowUp(ctx, tx, fu); err != nil {
		return err
	}
	if err := updateLocalLead(ctx, tx, lead); err != nil {
		return err
	}
	return tx.Commit()
}

func scanLocalLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var contact, source, next, last sql.NullString
	var createdAt, updatedAt string

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
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.ContactPerson = contact.String
	l.Source = source.String
	if next.Valid && next.String != "" {
		d, err := entity.ParseDate(next.String)
		if err != nil {
			return nil, err
		}
		l.NextFollowUpDate = &d
	}
	if last.Valid && last.String != "" {
		t, err := time.Parse(time.RFC3339Nano, last.String)
		if err != nil {
			return nil, err
		}
		l.LastFollowUpDate = &t
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLocalFollowUp(row rowScanner) (*entity.FollowUp, error) {
	var fu entity.FollowUp
	var notes, next sql.NullString
	var followUpDate, createdAt string

	err := row.Scan(
		&fu.FollowUpID,
		&fu.LeadID,
		&followUpDate,
		&fu.Status,
		&notes,
		&next,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	fu.Notes = notes.String
	if next.Valid && next.String != "" {
		d, err := entity.ParseDate(next.String)
		if err != nil {
			return nil, err
		}
		fu.NextFollowUpDate = &d
	}
	if fu.FollowUpDate, err = time.Parse(time.RFC3339Nano, followUpDate); err != nil {
		return nil, err
	}
	if fu.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	return &fu, nil
}

func dateText(d *entity.Date) *string {
	if d == nil || d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

func timeText(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

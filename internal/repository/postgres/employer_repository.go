package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/employer"
)

const employerColumns = `id, organization_name, contact_name, phone, email, password_hash, city, address, description, created_at`

type EmployerRepository struct {
	db *sql.DB
}

func NewEmployerRepository(db *sql.DB) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) Create(ctx context.Context, e employer.Employer) (*employer.Employer, error) {
	e.ID = common.NewUUID()
	e.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO employers (`+employerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.OrganizationName, e.ContactName, e.Phone, e.Email, e.PasswordHash,
		e.City, e.Address, e.Description, e.CreatedAt)
	if err != nil {
		return nil, storeError("email already registered", err)
	}
	return &e, nil
}

func (r *EmployerRepository) Update(ctx context.Context, e employer.Employer) (*employer.Employer, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE employers SET organization_name = $1, contact_name = $2, phone = $3, email = $4, city = $5, address = $6, description = $7
		WHERE id = $8`,
		e.OrganizationName, e.ContactName, e.Phone, e.Email, e.City, e.Address, e.Description, e.ID)
	if err != nil {
		return nil, storeError("email already registered", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "employer not found", sql.ErrNoRows)
	}
	return &e, nil
}

func (r *EmployerRepository) GetByID(ctx context.Context, id common.UUID) (*employer.Employer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employerColumns+` FROM employers WHERE id = $1`, id)
	return scanEmployer(row)
}

func (r *EmployerRepository) GetByEmail(ctx context.Context, email string) (*employer.Employer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employerColumns+` FROM employers WHERE email = $1`, email)
	return scanEmployer(row)
}

func (r *EmployerRepository) GetByVacancyID(ctx context.Context, vacancyID common.UUID) (*employer.Employer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT e.id, e.organization_name, e.contact_name, e.phone, e.email, e.password_hash, e.city, e.address, e.description, e.created_at
		FROM employers e JOIN vacancies v ON v.employer_id = e.id
		WHERE v.id = $1`, vacancyID)
	return scanEmployer(row)
}

func scanEmployer(row *sql.Row) (*employer.Employer, error) {
	var e employer.Employer
	err := row.Scan(&e.ID, &e.OrganizationName, &e.ContactName, &e.Phone, &e.Email, &e.PasswordHash,
		&e.City, &e.Address, &e.Description, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "employer not found", err)
		}
		return nil, storeError("failed to load employer", err)
	}
	return &e, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
)

const vacancyColumns = `id, employer_id, subject, work_type, start_date, end_date, schedule_from, schedule_to, work_days, salary_amount, salary_type, address, description, contact_phone, contact_email, contact_person, status, created_at, updated_at`

// statusOrder ranks statuses for the employer dashboard: open first,
// archived last, newest first within a rank.
const statusOrder = `CASE v.status WHEN 'open' THEN 0 WHEN 'reserved' THEN 1 WHEN 'closed' THEN 2 ELSE 3 END`

type VacancyRepository struct {
	db *sql.DB
}

func NewVacancyRepository(db *sql.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

func (r *VacancyRepository) Create(ctx context.Context, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	v.ID = common.NewUUID()
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO vacancies (`+vacancyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		v.ID, v.EmployerID, v.Subject, v.WorkType, v.StartDate, v.EndDate, v.ScheduleFrom, v.ScheduleTo,
		pq.Array(v.WorkDays), v.SalaryAmount, v.SalaryType, v.Address, v.Description,
		v.ContactPhone, v.ContactEmail, v.ContactPerson, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return nil, storeError("failed to create vacancy", err)
	}
	return &v, nil
}

func (r *VacancyRepository) Update(ctx context.Context, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	v.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE vacancies SET subject = $1, work_type = $2, start_date = $3, end_date = $4, schedule_from = $5, schedule_to = $6, work_days = $7, salary_amount = $8, salary_type = $9, address = $10, description = $11, contact_phone = $12, contact_email = $13, contact_person = $14, status = $15, updated_at = $16
		WHERE id = $17 AND employer_id = $18`,
		v.Subject, v.WorkType, v.StartDate, v.EndDate, v.ScheduleFrom, v.ScheduleTo,
		pq.Array(v.WorkDays), v.SalaryAmount, v.SalaryType, v.Address, v.Description,
		v.ContactPhone, v.ContactEmail, v.ContactPerson, v.Status, v.UpdatedAt, v.ID, v.EmployerID)
	if err != nil {
		return nil, storeError("failed to update vacancy", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "vacancy not found", sql.ErrNoRows)
	}
	return &v, nil
}

func (r *VacancyRepository) SetStatus(ctx context.Context, id common.UUID, status vacancy.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE vacancies SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return storeError("failed to update vacancy status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "vacancy not found", sql.ErrNoRows)
	}
	return nil
}

func (r *VacancyRepository) RestoreArchived(ctx context.Context, id common.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE vacancies SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		vacancy.StatusOpen, time.Now().UTC(), id, vacancy.StatusArchived)
	if err != nil {
		return false, storeError("failed to restore vacancy", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, storeError("failed to restore vacancy", err)
	}
	return rows > 0, nil
}

func (r *VacancyRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return storeError("failed to delete vacancy", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "vacancy not found", sql.ErrNoRows)
	}
	return nil
}

func (r *VacancyRepository) GetByID(ctx context.Context, id common.UUID) (*vacancy.Vacancy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id)
	v, err := scanVacancy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "vacancy not found", err)
		}
		return nil, storeError("failed to load vacancy", err)
	}
	return v, nil
}

func (r *VacancyRepository) GetPublicByID(ctx context.Context, id common.UUID) (*vacancy.WithEmployer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+joinedColumns(true)+`
		FROM vacancies v JOIN employers e ON v.employer_id = e.id
		WHERE v.id = $1`, id)
	item, err := scanJoined(row, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "vacancy not found", err)
		}
		return nil, storeError("failed to load vacancy", err)
	}
	return item, nil
}

// ListPublic composes the filter set into a single conjunctive WHERE
// clause. Archived postings are always excluded here.
func (r *VacancyRepository) ListPublic(ctx context.Context, filter vacancy.Filter) ([]vacancy.WithEmployer, error) {
	conds := []string{"v.status <> $1"}
	args := []any{vacancy.StatusArchived}
	if filter.Subject != "" {
		args = append(args, "%"+filter.Subject+"%")
		conds = append(conds, fmt.Sprintf("v.subject ILIKE $%d", len(args)))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		conds = append(conds, fmt.Sprintf("v.start_date >= $%d", len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		conds = append(conds, fmt.Sprintf("v.end_date <= $%d", len(args)))
	}
	if filter.MinSalary > 0 {
		args = append(args, filter.MinSalary)
		conds = append(conds, fmt.Sprintf("v.salary_amount >= $%d", len(args)))
	}
	query := `SELECT ` + joinedColumns(false) + `
		FROM vacancies v JOIN employers e ON v.employer_id = e.id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY v.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError("failed to list vacancies", err)
	}
	defer rows.Close()
	var items []vacancy.WithEmployer
	for rows.Next() {
		item, err := scanJoined(rows, false)
		if err != nil {
			return nil, storeError("failed to scan vacancy", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to list vacancies", err)
	}
	return items, nil
}

func (r *VacancyRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]vacancy.Vacancy, error) {
	return r.listOwned(ctx, `SELECT `+prefixed(vacancyColumns)+` FROM vacancies v
		WHERE v.employer_id = $1
		ORDER BY `+statusOrder+`, v.created_at DESC`, employerID)
}

func (r *VacancyRepository) ListArchivedByEmployer(ctx context.Context, employerID common.UUID) ([]vacancy.Vacancy, error) {
	return r.listOwned(ctx, `SELECT `+prefixed(vacancyColumns)+` FROM vacancies v
		WHERE v.employer_id = $1 AND v.status = '`+string(vacancy.StatusArchived)+`'
		ORDER BY v.created_at DESC`, employerID)
}

func (r *VacancyRepository) listOwned(ctx context.Context, query string, employerID common.UUID) ([]vacancy.Vacancy, error) {
	rows, err := r.db.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, storeError("failed to list employer vacancies", err)
	}
	defer rows.Close()
	var items []vacancy.Vacancy
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, storeError("failed to scan vacancy", err)
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to list employer vacancies", err)
	}
	return items, nil
}

func (r *VacancyRepository) ArchiveExpired(ctx context.Context, before common.Date) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE vacancies SET status = $1, updated_at = $2
		WHERE status <> $1 AND end_date < $3`,
		vacancy.StatusArchived, time.Now().UTC(), before)
	if err != nil {
		return 0, storeError("failed to archive expired vacancies", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, storeError("failed to archive expired vacancies", err)
	}
	return rows, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVacancy(row rowScanner) (*vacancy.Vacancy, error) {
	var v vacancy.Vacancy
	err := row.Scan(&v.ID, &v.EmployerID, &v.Subject, &v.WorkType, &v.StartDate, &v.EndDate,
		&v.ScheduleFrom, &v.ScheduleTo, pq.Array(&v.WorkDays), &v.SalaryAmount, &v.SalaryType,
		&v.Address, &v.Description, &v.ContactPhone, &v.ContactEmail, &v.ContactPerson,
		&v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanJoined(row rowScanner, withContacts bool) (*vacancy.WithEmployer, error) {
	var item vacancy.WithEmployer
	dest := []any{&item.ID, &item.EmployerID, &item.Subject, &item.WorkType, &item.StartDate, &item.EndDate,
		&item.ScheduleFrom, &item.ScheduleTo, pq.Array(&item.WorkDays), &item.SalaryAmount, &item.SalaryType,
		&item.Address, &item.Description, &item.ContactPhone, &item.ContactEmail, &item.ContactPerson,
		&item.Status, &item.CreatedAt, &item.UpdatedAt, &item.OrganizationName, &item.ContactName}
	if withContacts {
		dest = append(dest, &item.EmployerPhone, &item.EmployerEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &item, nil
}

func joinedColumns(withContacts bool) string {
	cols := prefixed(vacancyColumns) + ", e.organization_name, e.contact_name"
	if withContacts {
		cols += ", e.phone, e.email"
	}
	return cols
}

func prefixed(columns string) string {
	return "v." + strings.ReplaceAll(columns, ", ", ", v.")
}

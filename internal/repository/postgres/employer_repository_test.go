package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/klimenko666/dptmptch/internal/common"
	"github.com/klimenko666/dptmptch/internal/domain/employer"
)

func TestCreateEmployerDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewEmployerRepository(db)

	mock.ExpectExec(`INSERT INTO employers`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employers_email_key"})

	_, err = repo.Create(context.Background(), employer.Employer{Email: "taken@school.example"})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByVacancyIDJoinsThroughVacancies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewEmployerRepository(db)

	vacancyID := common.NewUUID()
	employerID := common.NewUUID()
	mock.ExpectQuery(`FROM employers e JOIN vacancies v ON v\.employer_id = e\.id\s+WHERE v\.id = \$1`).
		WithArgs(vacancyID.String()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "organization_name", "contact_name", "phone", "email", "password_hash",
			"city", "address", "description", "created_at",
		}).AddRow(
			employerID.String(), "School No. 12", "Maria Petrova", "+7 912 000-11-22",
			"director@school12.example", "$2a$10$hash", "Kazan", "", "", time.Now().UTC(),
		))

	found, err := repo.GetByVacancyID(context.Background(), vacancyID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ID != employerID {
		t.Fatalf("expected employer %s, got %s", employerID, found.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

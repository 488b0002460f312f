package repositories

import (
	"database/sql"
	"testing"

	"marketplace/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApproveActivatesPlan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE travel_plans SET admin_approved=1").
		WithArgs(string(domain.PlanActive), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := TravelPlanRepository{DB: db}
	if err := repo.Approve(10); err != nil {
		t.Fatalf("approve error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApproveTwiceConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE travel_plans SET admin_approved=1").
		WithArgs(string(domain.PlanActive), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM travel_plans WHERE id=").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	repo := TravelPlanRepository{DB: db}
	err = repo.Approve(10)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApproveMissingPlanNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE travel_plans SET admin_approved=1").
		WithArgs(string(domain.PlanActive), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM travel_plans WHERE id=").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	repo := TravelPlanRepository{DB: db}
	err = repo.Approve(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetStatusGuardsCurrentStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE travel_plans SET status=").
		WithArgs(string(domain.PlanActive), int64(10), string(domain.PlanInactive)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TravelPlanRepository{DB: db}
	err = repo.SetStatus(10, domain.PlanInactive, domain.PlanActive)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict when status moved underneath, got %v", err)
	}
}

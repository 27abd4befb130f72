package repositories

import (
	"errors"
	"testing"

	"railway/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingMirrorSaveRewritesTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings_ledger").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings_ledger"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings_ledger").WillReturnResult(sqlmock.NewResult(0, 4))
	prep := mock.ExpectPrepare("INSERT INTO bookings_ledger")
	prep.ExpectExec().WithArgs(int64(2), "Bob", 40, "Male", 3, "AC", 0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	prep.ExpectExec().WithArgs(int64(1), "Ann", 30, "Female", 1, "2A", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := BookingMirrorRepo{DB: db}
	err = repo.Save([]models.Booking{
		{ID: 2, PassengerName: "Bob", Age: 40, Gender: "Male", TrainID: 3, TravelClass: "AC"},
		{ID: 1, PassengerName: "Ann", Age: 30, Gender: "Female", TrainID: 1, TravelClass: "2A"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingMirrorCreatesMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings_ledger").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings_ledger").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings_ledger").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO bookings_ledger")
	mock.ExpectCommit()

	if err := (BookingMirrorRepo{DB: db}).Save(nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingMirrorRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("bookings_ledger").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings_ledger"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings_ledger").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO bookings_ledger").
		ExpectExec().WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = (BookingMirrorRepo{DB: db}).Save([]models.Booking{{ID: 1, PassengerName: "Ann", TrainID: 1}})
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingMirrorWithoutDB(t *testing.T) {
	if err := (BookingMirrorRepo{}).Save(nil); err == nil {
		t.Fatalf("expected error without db")
	}
}

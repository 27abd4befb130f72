package repositories

import (
	"database/sql"
	"fmt"

	intdb "railway/internal/db"
	"railway/internal/domain/models"
)

const mirrorTable = "bookings_ledger"

// BookingMirrorRepo copies the ledger into a MySQL table after each save.
// It is write-only: the record file stays the source of truth.
type BookingMirrorRepo struct {
	DB *sql.DB
}

// Save replaces the mirror table content with bookings inside one transaction.
func (r BookingMirrorRepo) Save(bookings []models.Booking) error {
	if r.DB == nil {
		return fmt.Errorf("mirror db not connected")
	}
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("ensure %s: %w", mirrorTable, err)
	}

	tx, err := r.DB.Begin()
	if err != nil {
		intdb.LogBadConn("mirror begin", err)
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM ` + mirrorTable); err != nil {
		return fmt.Errorf("clear %s: %w", mirrorTable, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO ` + mirrorTable + `
		(booking_id, passenger_name, age, gender, train_id, travel_class, position)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range bookings {
		if _, err := stmt.Exec(b.ID, b.PassengerName, b.Age, b.Gender, b.TrainID, b.TravelClass, i); err != nil {
			return fmt.Errorf("insert booking %d: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

func (r BookingMirrorRepo) ensureTable() error {
	if intdb.HasTable(r.DB, mirrorTable) {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS ` + mirrorTable + ` (
	booking_id BIGINT NOT NULL PRIMARY KEY,
	passenger_name VARCHAR(99) NOT NULL,
	age INT NOT NULL,
	gender VARCHAR(9) NOT NULL,
	train_id INT NOT NULL,
	travel_class VARCHAR(19) NOT NULL,
	position INT NOT NULL,
	KEY idx_train (train_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := r.DB.Exec(ddl)
	return err
}

package services

import (
	"railway/internal/domain/models"
	"railway/internal/repositories"
)

// CapacityChecker derives free seats from the live bookings.
type CapacityChecker struct {
	Store *repositories.BookingStore
}

// Available returns total seats minus live bookings on t. It can go
// negative when a loaded file already over-books the train.
func (c CapacityChecker) Available(t models.Train) int {
	if c.Store == nil {
		return t.TotalSeats
	}
	return t.TotalSeats - c.Store.CountForTrain(t.ID)
}

// HasRoom reports whether one more booking fits on t.
func (c CapacityChecker) HasRoom(t models.Train) bool {
	return c.Available(t) > 0
}

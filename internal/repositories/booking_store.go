package repositories

import (
	"iter"

	"railway/internal/domain"
	"railway/internal/domain/models"
)

// BookingStore holds live bookings in memory. It does no validation and no
// I/O; callers check constraints before Insert and persist afterwards.
// Enumeration is newest first.
type BookingStore struct {
	records []models.Booking // oldest first
}

func NewBookingStore() *BookingStore {
	return &BookingStore{}
}

// Insert adds b as the most recent record.
func (s *BookingStore) Insert(b models.Booking) {
	s.records = append(s.records, b)
}

// Remove deletes the record with the given id and reports whether one existed.
func (s *BookingStore) Remove(id domain.ID) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *BookingStore) Find(id domain.ID) (models.Booking, bool) {
	for _, b := range s.records {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// All enumerates records newest first. The sequence reflects the store at
// the time each iteration starts.
func (s *BookingStore) All() iter.Seq[models.Booking] {
	return func(yield func(models.Booking) bool) {
		for i := len(s.records) - 1; i >= 0; i-- {
			if !yield(s.records[i]) {
				return
			}
		}
	}
}

// Snapshot copies the records in enumeration order.
func (s *BookingStore) Snapshot() []models.Booking {
	out := make([]models.Booking, 0, len(s.records))
	for b := range s.All() {
		out = append(out, b)
	}
	return out
}

func (s *BookingStore) CountForTrain(trainID int) int {
	n := 0
	for _, b := range s.records {
		if b.TrainID == trainID {
			n++
		}
	}
	return n
}

func (s *BookingStore) Len() int {
	return len(s.records)
}

// MaxID returns the highest id held, or 0 when empty.
func (s *BookingStore) MaxID() domain.ID {
	var highest domain.ID
	for _, b := range s.records {
		if b.ID > highest {
			highest = b.ID
		}
	}
	return highest
}

package services

import (
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"
)

// DuplicateDetector blocks re-booking the same passenger on the same train
// and class.
type DuplicateDetector struct {
	Store *repositories.BookingStore
}

// IsDuplicate reports whether any live booking is equivalent to candidate.
// It stops at the first match.
func (d DuplicateDetector) IsDuplicate(candidate models.Booking) bool {
	if d.Store == nil {
		return false
	}
	for b := range d.Store.All() {
		if Equivalent(b, candidate) {
			return true
		}
	}
	return false
}

// Equivalent applies the duplicate rule to a single pair. Both sides are cut
// to storage width before whitespace removal and case folding.
func Equivalent(a, b models.Booking) bool {
	a, b = a.Normalized(), b.Normalized()
	return a.Age == b.Age &&
		a.TrainID == b.TrainID &&
		utils.FoldKey(a.PassengerName) == utils.FoldKey(b.PassengerName) &&
		utils.FoldKey(a.TravelClass) == utils.FoldKey(b.TravelClass)
}

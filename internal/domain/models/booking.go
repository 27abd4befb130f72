package models

import (
	"railway/internal/domain"
	"railway/internal/utils"
)

// Train is a catalog route. Never mutated at runtime.
type Train struct {
	ID          int
	Name        string
	Origin      string
	Destination string
	TotalSeats  int
}

// Booking is one passenger reservation held by the ledger.
type Booking struct {
	ID            domain.ID
	PassengerName string
	Age           int
	Gender        string
	TrainID       int
	TravelClass   string
}

// Normalized returns b with its text fields cut to their storage widths,
// exactly as they will be persisted.
func (b Booking) Normalized() Booking {
	b.PassengerName = utils.FitWidth(b.PassengerName, domain.NameWidth)
	b.Gender = utils.FitWidth(b.Gender, domain.GenderWidth)
	b.TravelClass = utils.FitWidth(b.TravelClass, domain.ClassWidth)
	return b
}

// BookingView pairs a booking with its resolved train for display.
// TrainKnown is false when the booking references a train missing from the catalog.
type BookingView struct {
	Booking    Booking
	Train      Train
	TrainKnown bool
}

// Availability carries the free seat count of one train.
type Availability struct {
	Train     Train
	Available int
}

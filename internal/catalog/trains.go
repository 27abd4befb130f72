// Package catalog holds the compiled-in train routes.
package catalog

import "railway/internal/domain/models"

var trains = [...]models.Train{
	{ID: 1, Name: "Express A", Origin: "Mumbai", Destination: "Delhi", TotalSeats: 100},
	{ID: 2, Name: "Superfast B", Origin: "Kolkata", Destination: "Bangalore", TotalSeats: 80},
	{ID: 3, Name: "Intercity C", Origin: "Chennai", Destination: "Hyderabad", TotalSeats: 60},
	{ID: 4, Name: "Mail D", Origin: "Jaipur", Destination: "Lucknow", TotalSeats: 50},
	{ID: 5, Name: "Shatabdi E", Origin: "Ahmedabad", Destination: "Pune", TotalSeats: 90},
}

// Trains returns the catalog in listing order. The slice is a copy.
func Trains() []models.Train {
	out := make([]models.Train, len(trains))
	copy(out, trains[:])
	return out
}

// Lookup finds a train by id.
func Lookup(id int) (models.Train, bool) {
	for _, t := range trains {
		if t.ID == id {
			return t, true
		}
	}
	return models.Train{}, false
}

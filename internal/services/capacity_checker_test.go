package services

import (
	"testing"

	"railway/internal/domain/models"
	"railway/internal/repositories"
)

func TestCapacityChecker(t *testing.T) {
	store := repositories.NewBookingStore()
	c := CapacityChecker{Store: store}
	train := models.Train{ID: 9, TotalSeats: 2}
	if !c.HasRoom(train) || c.Available(train) != 2 {
		t.Fatalf("empty train should have 2 seats")
	}
	store.Insert(models.Booking{ID: 1, TrainID: 9})
	store.Insert(models.Booking{ID: 2, TrainID: 9})
	store.Insert(models.Booking{ID: 3, TrainID: 8})
	if c.HasRoom(train) || c.Available(train) != 0 {
		t.Fatalf("train should be full, available=%d", c.Available(train))
	}
}

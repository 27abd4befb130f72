package repositories

import (
	"testing"

	"railway/internal/domain/models"
)

func TestBookingStoreEnumeratesNewestFirst(t *testing.T) {
	s := NewBookingStore()
	s.Insert(models.Booking{ID: 1, TrainID: 1})
	s.Insert(models.Booking{ID: 2, TrainID: 2})
	s.Insert(models.Booking{ID: 3, TrainID: 1})

	var ids []int64
	for b := range s.All() {
		ids = append(ids, b.ID)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 2 || ids[2] != 1 {
		t.Fatalf("unexpected order: %v", ids)
	}
	if got := s.CountForTrain(1); got != 2 {
		t.Fatalf("count for train 1: got %d want 2", got)
	}
	if got := s.MaxID(); got != 3 {
		t.Fatalf("max id: got %d want 3", got)
	}
}

func TestBookingStoreRemoveAndFind(t *testing.T) {
	s := NewBookingStore()
	s.Insert(models.Booking{ID: 7, PassengerName: "Ann"})
	s.Insert(models.Booking{ID: 8, PassengerName: "Bob"})

	if _, ok := s.Find(9); ok {
		t.Fatalf("found a booking that was never inserted")
	}
	if b, ok := s.Find(8); !ok || b.PassengerName != "Bob" {
		t.Fatalf("find 8: got %+v ok=%v", b, ok)
	}
	if !s.Remove(7) {
		t.Fatalf("remove 7 reported nothing removed")
	}
	if s.Remove(7) {
		t.Fatalf("second remove of 7 reported a removal")
	}
	if s.Len() != 1 {
		t.Fatalf("len after remove: got %d want 1", s.Len())
	}
}

func TestBookingStoreAllStopsEarly(t *testing.T) {
	s := NewBookingStore()
	for i := int64(1); i <= 5; i++ {
		s.Insert(models.Booking{ID: i})
	}
	seen := 0
	for range s.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("iteration did not stop: seen=%d", seen)
	}
}

func TestBookingStoreEmptyMaxID(t *testing.T) {
	if got := NewBookingStore().MaxID(); got != 0 {
		t.Fatalf("empty store max id: got %d want 0", got)
	}
}

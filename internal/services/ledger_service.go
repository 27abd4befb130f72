package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"railway/internal/catalog"
	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"
)

// BookingPersister stores a full copy of the ledger in enumeration order.
type BookingPersister interface {
	Save(bookings []models.Booking) error
}

// BookingFile is the primary store: loaded once, rewritten after each change.
type BookingFile interface {
	BookingPersister
	Load() ([]models.Booking, error)
}

// TicketRenderer receives every booking right after it is created.
type TicketRenderer interface {
	Render(ctx context.Context, v models.BookingView) error
}

type LedgerOptions struct {
	File    BookingFile
	Mirror  BookingPersister // optional
	Tickets TicketRenderer   // optional
}

// LedgerService is the booking ledger. Book and Cancel run check, mutate
// and persist inside one critical section.
type LedgerService struct {
	file    BookingFile
	mirror  BookingPersister
	tickets TicketRenderer

	mu         sync.Mutex
	store      *repositories.BookingStore
	ids        IDAllocator
	duplicates DuplicateDetector
	capacity   CapacityChecker
}

// OpenLedger loads the booking file and seeds the id allocator. When the
// file ends in a partial record the ledger is still returned, together with
// an error matching domain.ErrPersistenceReadTruncated.
func OpenLedger(ctx context.Context, opts LedgerOptions) (*LedgerService, error) {
	if opts.File == nil {
		return nil, fmt.Errorf("ledger: booking file is required")
	}
	store := repositories.NewBookingStore()
	s := &LedgerService{
		file:       opts.File,
		mirror:     opts.Mirror,
		tickets:    opts.Tickets,
		store:      store,
		duplicates: DuplicateDetector{Store: store},
		capacity:   CapacityChecker{Store: store},
	}

	loaded, loadErr := opts.File.Load()
	if loadErr != nil && !errors.Is(loadErr, domain.ErrPersistenceReadTruncated) {
		return nil, domain.InternalError{Msg: "load bookings", Err: loadErr}
	}
	// The file is newest first; insert oldest first to rebuild the same order.
	for i := len(loaded) - 1; i >= 0; i-- {
		store.Insert(loaded[i])
	}
	s.ids.Seed(store.MaxID())

	reqID := utils.RequestID(ctx)
	utils.LogEvent(reqID, "ledger", "load", fmt.Sprintf("bookings=%d next_id=%d", store.Len(), s.ids.Peek()))
	if loadErr != nil {
		utils.LogEvent(reqID, "ledger", "load_truncated", loadErr.Error())
		return s, loadErr
	}
	return s, nil
}

// Book validates candidate and records it under a fresh id. Train existence,
// capacity and duplicates are checked in that order. When only the save
// fails the booking is kept and returned with an error matching
// domain.ErrPersistenceWriteFailed.
func (s *LedgerService) Book(ctx context.Context, candidate models.Booking) (models.Booking, error) {
	reqID := utils.RequestID(ctx)
	candidate = candidate.Normalized()
	candidate.ID = 0
	if strings.TrimSpace(candidate.PassengerName) == "" {
		return models.Booking{}, domain.ValidationError{Field: "passenger_name", Msg: "name cannot be empty"}
	}

	view, err := s.book(reqID, candidate)
	if view.Booking.ID == 0 {
		utils.LogEvent(reqID, "ledger", "book_rejected", fmt.Sprintf("train_id=%d reason=%v", candidate.TrainID, err))
		return models.Booking{}, err
	}
	utils.LogEvent(reqID, "ledger", "book", fmt.Sprintf("booking_id=%d train_id=%d", view.Booking.ID, view.Booking.TrainID))

	if s.tickets != nil {
		if err := s.tickets.Render(ctx, view); err != nil {
			utils.LogEvent(reqID, "ledger", "ticket_failed", fmt.Sprintf("booking_id=%d err=%v", view.Booking.ID, err))
		}
	}
	return view.Booking, err
}

// book returns a zero view when candidate is rejected; a non-zero view with
// an error means the booking was recorded but not saved.
func (s *LedgerService) book(reqID string, candidate models.Booking) (models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	train, ok := catalog.Lookup(candidate.TrainID)
	if !ok {
		return models.BookingView{}, domain.NotFoundError{Resource: "train", Err: domain.ErrUnknownTrain}
	}
	if !s.capacity.HasRoom(train) {
		return models.BookingView{}, domain.ConflictError{
			Resource: "train",
			Msg:      fmt.Sprintf("no seats available on %s", train.Name),
			Err:      domain.ErrTrainFull,
		}
	}
	if s.duplicates.IsDuplicate(candidate) {
		return models.BookingView{}, domain.ConflictError{
			Resource: "booking",
			Msg:      "a booking with the same details already exists",
			Err:      domain.ErrDuplicateBooking,
		}
	}

	candidate.ID = s.ids.Next()
	s.store.Insert(candidate)
	view := models.BookingView{Booking: candidate, Train: train, TrainKnown: true}
	return view, s.persistLocked(reqID)
}

// Cancel removes a booking and retires its id. A failed save is reported
// but the removal stands.
func (s *LedgerService) Cancel(ctx context.Context, id domain.ID) error {
	reqID := utils.RequestID(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Remove(id) {
		return domain.NotFoundError{Resource: "booking", Err: domain.ErrBookingNotFound}
	}
	utils.LogEvent(reqID, "ledger", "cancel", fmt.Sprintf("booking_id=%d", id))
	return s.persistLocked(reqID)
}

func (s *LedgerService) Find(_ context.Context, id domain.ID) (models.BookingView, error) {
	s.mu.Lock()
	b, ok := s.store.Find(id)
	s.mu.Unlock()
	if !ok {
		return models.BookingView{}, domain.NotFoundError{Resource: "booking", Err: domain.ErrBookingNotFound}
	}
	return viewOf(b), nil
}

// List yields every live booking, newest first, with its train. Each range
// over the sequence starts from the ledger as it is at that moment.
func (s *LedgerService) List(_ context.Context) iter.Seq[models.BookingView] {
	return func(yield func(models.BookingView) bool) {
		s.mu.Lock()
		snapshot := s.store.Snapshot()
		s.mu.Unlock()
		for _, b := range snapshot {
			if !yield(viewOf(b)) {
				return
			}
		}
	}
}

// Availability returns free seats per train in catalog order.
func (s *LedgerService) Availability(_ context.Context) []models.Availability {
	s.mu.Lock()
	defer s.mu.Unlock()

	trains := catalog.Trains()
	out := make([]models.Availability, 0, len(trains))
	for _, t := range trains {
		out = append(out, models.Availability{Train: t, Available: s.capacity.Available(t)})
	}
	return out
}

// Available returns free seats on one train.
func (s *LedgerService) Available(_ context.Context, trainID int) (int, error) {
	train, ok := catalog.Lookup(trainID)
	if !ok {
		return 0, domain.NotFoundError{Resource: "train", Err: domain.ErrUnknownTrain}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity.Available(train), nil
}

// Len returns the number of live bookings.
func (s *LedgerService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Flush rewrites the booking file from memory, e.g. before exit.
func (s *LedgerService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(utils.RequestID(ctx))
}

func (s *LedgerService) persistLocked(reqID string) error {
	snapshot := s.store.Snapshot()
	if err := s.file.Save(snapshot); err != nil {
		if !errors.Is(err, domain.ErrPersistenceWriteFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrPersistenceWriteFailed, err)
		}
		utils.LogEvent(reqID, "ledger", "save_failed", err.Error())
		return domain.InternalError{Msg: "could not save bookings", Err: err}
	}
	if s.mirror != nil {
		if err := s.mirror.Save(snapshot); err != nil {
			utils.LogEvent(reqID, "ledger", "mirror_failed", err.Error())
		}
	}
	return nil
}

func viewOf(b models.Booking) models.BookingView {
	t, ok := catalog.Lookup(b.TrainID)
	return models.BookingView{Booking: b, Train: t, TrainKnown: ok}
}

package repositories

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"railway/internal/domain"
	"railway/internal/domain/models"
)

// bookingRecord is the on-disk layout of one booking: fixed size, fields in
// declaration order, little-endian integers, NUL-padded text.
type bookingRecord struct {
	BookingID     int64
	PassengerName [domain.NameWidth]byte
	Age           int64
	Gender        [domain.GenderWidth]byte
	TrainID       int64
	TravelClass   [domain.ClassWidth]byte
}

// RecordSize is the byte length of one persisted booking.
var RecordSize = binary.Size(bookingRecord{})

var recordOrder = binary.LittleEndian

// BookingFileRepo persists bookings to a headerless file of fixed-size
// records, rewriting the whole file on every save.
type BookingFileRepo struct {
	Path string
}

// Load reads every complete record in file order. A missing file yields no
// records and no error. A trailing partial record is dropped and reported
// with domain.ErrPersistenceReadTruncated alongside the complete records.
func (r BookingFileRepo) Load() ([]models.Booking, error) {
	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	full := len(data) / RecordSize
	out := make([]models.Booking, 0, full)
	for i := 0; i < full; i++ {
		var rec bookingRecord
		if _, err := binary.Decode(data[i*RecordSize:(i+1)*RecordSize], recordOrder, &rec); err != nil {
			return out, fmt.Errorf("decode record %d: %w", i, err)
		}
		out = append(out, rec.booking())
	}

	if rest := len(data) % RecordSize; rest != 0 {
		return out, fmt.Errorf("%w: %s has %d trailing bytes after %d records",
			domain.ErrPersistenceReadTruncated, r.Path, rest, full)
	}
	return out, nil
}

// Save replaces the file with the given bookings, in order. The content is
// written to a temporary file next to Path and renamed over it, so a crash
// mid-write leaves the previous file intact.
func (r BookingFileRepo) Save(bookings []models.Booking) error {
	buf := make([]byte, 0, len(bookings)*RecordSize)
	for _, b := range bookings {
		var err error
		buf, err = binary.Append(buf, recordOrder, newBookingRecord(b))
		if err != nil {
			return fmt.Errorf("%w: encode booking %d: %v", domain.ErrPersistenceWriteFailed, b.ID, err)
		}
	}

	dir := filepath.Dir(r.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceWriteFailed, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	// CreateTemp opens with 0600; keep the mode the ledger already had.
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(r.Path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: chmod %s: %v", domain.ErrPersistenceWriteFailed, tmpName, err)
	}

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistenceWriteFailed, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: sync %s: %v", domain.ErrPersistenceWriteFailed, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: close %s: %v", domain.ErrPersistenceWriteFailed, tmpName, err)
	}
	if err := os.Rename(tmpName, r.Path); err != nil {
		cleanup()
		return fmt.Errorf("%w: rename to %s: %v", domain.ErrPersistenceWriteFailed, r.Path, err)
	}
	return nil
}

func newBookingRecord(b models.Booking) bookingRecord {
	b = b.Normalized()
	rec := bookingRecord{
		BookingID: b.ID,
		Age:       int64(b.Age),
		TrainID:   int64(b.TrainID),
	}
	copy(rec.PassengerName[:], b.PassengerName)
	copy(rec.Gender[:], b.Gender)
	copy(rec.TravelClass[:], b.TravelClass)
	return rec
}

func (rec bookingRecord) booking() models.Booking {
	return models.Booking{
		ID:            rec.BookingID,
		PassengerName: cString(rec.PassengerName[:]),
		Age:           int(rec.Age),
		Gender:        cString(rec.Gender[:]),
		TrainID:       int(rec.TrainID),
		TravelClass:   cString(rec.TravelClass[:]),
	}
}

// cString reads a NUL-terminated field; a field with no NUL is used whole.
func cString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

package domain

// ID identifies a booking. Values are assigned once and never reused.
type ID = int64

// Storage widths of the text fields in a booking record, in bytes including
// the terminating NUL. Stored values hold at most width-1 bytes.
const (
	NameWidth   = 100
	GenderWidth = 10
	ClassWidth  = 20
)

package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"railway/internal/repositories"
	"railway/internal/services"
)

func runScript(t *testing.T, path, script string) string {
	t.Helper()
	ledger, err := services.OpenLedger(context.Background(), services.LedgerOptions{
		File: repositories.BookingFileRepo{Path: path},
	})
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	var out bytes.Buffer
	c := Console{
		Ledger:       ledger,
		In:           strings.NewReader(script),
		Out:          &out,
		NewRequestID: func() string { return "test" },
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func expectContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleBookSearchCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.dat")
	script := strings.Join([]string{
		"2", "Ann Lee", "30", "Female", "1", "AC",
		"2", "ann  lee", "30", "F", "1", "ac",
		"3",
		"4", "1",
		"5", "1",
		"5", "1",
		"6",
	}, "\n") + "\n"

	out := runScript(t, path, script)
	expectContains(t, out,
		"Booking successful! Booking ID: 1",
		"Passenger: Ann Lee | Train: Express A (Mumbai -> Delhi) | Class: AC",
		"Duplicate booking detected!",
		"--- All Bookings ---",
		"Booking found:",
		"Train: Express A (Mumbai -> Delhi)",
		"Booking 1 canceled successfully.",
		"Booking ID 1 not found.",
		"Goodbye!",
	)
	if strings.Count(out, "Booking successful!") != 1 {
		t.Fatalf("duplicate was booked:\n%s", out)
	}
}

func TestConsoleInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.dat")
	script := "x\n9\n2\nBob\nold\n2\n\n  \nBob\n40\nMale\n999\n2\nBob\n40\nMale\nabc\n4\nz\n3\n"

	out := runScript(t, path, script)
	expectContains(t, out,
		"Invalid input. Please enter a number 1-6.",
		"Invalid choice. Please choose 1-6.",
		"Invalid input. Booking canceled.",
		"Train ID not found. Booking canceled.",
		"Invalid train ID. Booking canceled.",
		"Invalid input.",
		"No bookings found.",
		"Goodbye!",
	)
}

func TestConsoleListTrainsShowsAvailability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.dat")
	out := runScript(t, path, "2\nAnn\n30\nFemale\n4\nSL\n1\n6\n")
	expectContains(t, out, "Available Trains:")
	if !strings.Contains(out, "Mail D") || !strings.Contains(out, "   49\n") {
		t.Fatalf("availability for Mail D not shown as 49:\n%s", out)
	}
}

func TestConsoleExitPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.dat")
	runScript(t, path, "2\nAnn\n30\nFemale\n2\nAC\n6\n")

	out := runScript(t, path, "3\n6\n")
	expectContains(t, out, "Ann", "Superfast B")
}

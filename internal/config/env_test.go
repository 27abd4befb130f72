package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOOKINGS_FILE", "TICKET_DIR", "TICKET_PDF", "MIRROR_DSN", "LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	env, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if env != Defaults() {
		t.Fatalf("got %+v want defaults %+v", env, Defaults())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "railway.yaml")
	yaml := "bookings_file: /var/lib/railway/bookings.dat\nticket_dir: /tmp/tickets\nticket_pdf: false\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TICKET_DIR", " /srv/tickets ")

	env, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if env.BookingsFile != "/var/lib/railway/bookings.dat" {
		t.Fatalf("bookings file from yaml: %q", env.BookingsFile)
	}
	if env.TicketDir != "/srv/tickets" {
		t.Fatalf("env should override yaml: %q", env.TicketDir)
	}
	if env.TicketPDF {
		t.Fatalf("ticket_pdf false in yaml was ignored")
	}
}

func TestLoadBadTicketPDF(t *testing.T) {
	clearEnv(t)
	t.Setenv("TICKET_PDF", "maybe")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for TICKET_PDF=maybe")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

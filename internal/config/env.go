package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env is the runtime configuration. Values come from an optional YAML file,
// then environment variables, then command-line flags (applied in main).
type Env struct {
	BookingsFile string `yaml:"bookings_file"`
	TicketDir    string `yaml:"ticket_dir"`
	TicketPDF    bool   `yaml:"ticket_pdf"`
	MirrorDSN    string `yaml:"mirror_dsn"`
	LogFile      string `yaml:"log_file"`
}

func Defaults() Env {
	return Env{
		BookingsFile: "bookings.dat",
		TicketDir:    ".",
		TicketPDF:    true,
	}
}

// Load builds an Env from defaults, the YAML file at path (skipped when
// path is empty), and environment variables, in that order.
func Load(path string) (Env, error) {
	env := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return env, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &env); err != nil {
			return env, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&env); err != nil {
		return env, err
	}
	return env, nil
}

func applyEnv(env *Env) error {
	if v := strings.TrimSpace(os.Getenv("BOOKINGS_FILE")); v != "" {
		env.BookingsFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TICKET_DIR")); v != "" {
		env.TicketDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TICKET_PDF")); v != "" {
		pdf, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TICKET_PDF: %w", err)
		}
		env.TicketPDF = pdf
	}
	if v := strings.TrimSpace(os.Getenv("MIRROR_DSN")); v != "" {
		env.MirrorDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		env.LogFile = v
	}
	return nil
}

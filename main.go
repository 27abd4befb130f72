package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"railway/internal/config"
	"railway/internal/console"
	"railway/internal/domain"
	"railway/internal/repositories"
	"railway/internal/services"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("railway", pflag.ContinueOnError)
	configPath := flagSet.String("config", os.Getenv("RAILWAY_CONFIG"), "path to YAML config file")
	bookingsFile := flagSet.String("file", "", "booking record file (default bookings.dat)")
	ticketDir := flagSet.String("tickets", "", "directory for generated tickets (default .)")
	noPDF := flagSet.Bool("no-pdf", false, "skip PDF e-tickets")
	mirrorDSN := flagSet.String("mirror-dsn", "", "MySQL DSN to mirror the ledger into")
	logFile := flagSet.String("log-file", "", "append logs to this file instead of stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintln(os.Stderr, "Usage: railway [flags]")
		flagSet.PrintDefaults()
		return nil
	}

	env, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *bookingsFile != "" {
		env.BookingsFile = *bookingsFile
	}
	if *ticketDir != "" {
		env.TicketDir = *ticketDir
	}
	if *noPDF {
		env.TicketPDF = false
	}
	if *mirrorDSN != "" {
		env.MirrorDSN = *mirrorDSN
	}
	if *logFile != "" {
		env.LogFile = *logFile
	}
	if env.LogFile != "" {
		f, err := os.OpenFile(env.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	opts := services.LedgerOptions{
		File:    repositories.BookingFileRepo{Path: env.BookingsFile},
		Tickets: services.TicketService{Dir: env.TicketDir, PDF: env.TicketPDF},
	}
	if env.MirrorDSN != "" {
		db, err := config.ConnectDB(env.MirrorDSN)
		if err != nil {
			log.Printf("warning: mirror disabled: %v", err)
		} else {
			defer config.CloseDB(db)
			opts.Mirror = repositories.BookingMirrorRepo{DB: db}
		}
	}

	ctx := context.Background()
	ledger, err := services.OpenLedger(ctx, opts)
	if err != nil {
		if !domain.IsNonFatal(err) {
			return err
		}
		log.Printf("warning: %v", err)
	}

	c := console.Console{
		Ledger:      ledger,
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
	return c.Run(ctx)
}

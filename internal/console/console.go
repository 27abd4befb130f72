// Package console is the operator's interactive menu on top of the ledger.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Ledger is the booking ledger as the menu uses it.
type Ledger interface {
	Book(ctx context.Context, candidate models.Booking) (models.Booking, error)
	Cancel(ctx context.Context, id domain.ID) error
	Find(ctx context.Context, id domain.ID) (models.BookingView, error)
	List(ctx context.Context) iter.Seq[models.BookingView]
	Availability(ctx context.Context) []models.Availability
	Flush(ctx context.Context) error
}

type Console struct {
	Ledger Ledger
	In     io.Reader
	Out    io.Writer
	// Interactive prints prompts; off when input is piped.
	Interactive  bool
	NewRequestID func() string

	reader *bufio.Reader
	styles styles
}

type styles struct {
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

var errInputClosed = errors.New("input closed")

// Run serves the menu until Exit is chosen or input ends. Both paths flush
// the ledger once more before returning.
func (c *Console) Run(ctx context.Context) error {
	c.reader = bufio.NewReader(c.In)
	c.styles = newStyles(c.Out)
	if c.NewRequestID == nil {
		c.NewRequestID = uuid.NewString
	}

	for {
		c.showMenu()
		line, err := c.readLine()
		if err != nil {
			return c.exit(ctx)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.println("Invalid input. Please enter a number 1-6.")
			continue
		}

		cmdCtx := utils.WithRequestID(ctx, c.NewRequestID())
		switch choice {
		case 1:
			c.listTrains(cmdCtx)
		case 2:
			err = c.bookTicket(cmdCtx)
		case 3:
			c.viewBookings(cmdCtx)
		case 4:
			err = c.searchBooking(cmdCtx)
		case 5:
			err = c.cancelBooking(cmdCtx)
		case 6:
			return c.exit(cmdCtx)
		default:
			c.println("Invalid choice. Please choose 1-6.")
		}
		if errors.Is(err, errInputClosed) {
			return c.exit(cmdCtx)
		}
	}
}

func (c *Console) exit(ctx context.Context) error {
	if err := c.Ledger.Flush(ctx); err != nil {
		c.println(c.styles.failure.Render("Error: could not save bookings: " + err.Error()))
	}
	c.println("Goodbye!")
	return nil
}

func (c *Console) showMenu() {
	c.println("")
	c.println(c.styles.heading.Render("================ Railway Ticket Booker ================"))
	c.println("1. List Trains")
	c.println("2. Book Ticket")
	c.println("3. View All Bookings")
	c.println("4. Search Booking by ID")
	c.println("5. Cancel Booking")
	c.println("6. Exit")
	c.prompt("Enter choice: ")
}

func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", errInputClosed
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readInt reads one line as an integer. ok is false for non-numeric input.
func (c *Console) readInt() (n int, ok bool, err error) {
	line, err := c.readLine()
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	return n, convErr == nil, nil
}

func (c *Console) prompt(s string) {
	if c.Interactive {
		fmt.Fprint(c.Out, s)
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.Out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// reportError prints err in operator terms.
func (c *Console) reportError(err error) {
	var conflict domain.ConflictError
	switch {
	case errors.Is(err, domain.ErrDuplicateBooking):
		c.println(c.styles.failure.Render("Duplicate booking detected! A booking with the same details already exists."))
		c.println("To prevent fraud, the system will not create a duplicate booking.")
	case errors.Is(err, domain.ErrTrainFull) && errors.As(err, &conflict):
		c.println(c.styles.failure.Render("Sorry, " + conflict.Msg + "."))
	case errors.Is(err, domain.ErrUnknownTrain):
		c.println(c.styles.failure.Render("Train ID not found. Booking canceled."))
	case domain.IsValidation(err):
		c.println(c.styles.failure.Render("Invalid input: " + err.Error()))
	case errors.Is(err, domain.ErrPersistenceWriteFailed):
		c.println(c.styles.failure.Render("Error: could not save bookings to file; changes are kept in memory."))
	default:
		c.println(c.styles.failure.Render("Error: " + err.Error()))
	}
}

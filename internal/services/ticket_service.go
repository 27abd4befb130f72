package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"railway/internal/domain/models"
	"railway/internal/utils"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/blake2b"
)

// qrSize is the side of the placeholder grid used when no QR code could be
// encoded.
const qrSize = 21

// TicketService writes the passenger-facing files for a booking: a text
// ticket, a QR code as a PBM image and, when PDF is set, a PDF e-ticket.
type TicketService struct {
	Dir string
	PDF bool
	Now func() time.Time

	// encode turns the payload into QR modules; nil uses encodeQR.
	encode func(payload string) ([][]bool, error)
}

type ticketData struct {
	BookingID     int64
	PassengerName string
	Age           int
	Gender        string
	TrainID       int
	TrainName     string
	RouteFrom     string
	RouteTo       string
	TravelClass   string
	Generated     time.Time
	Payload       string
	Code          string
	// QR holds the encoded modules, bitmap[y][x]; nil when encoding failed
	// and Grid is used instead.
	QR    [][]bool
	QRErr error
	Grid  [qrSize][qrSize]bool
}

// Render writes every ticket file for v. All files are attempted; the
// returned error joins the individual failures.
func (s TicketService) Render(ctx context.Context, v models.BookingView) error {
	d := s.ticketData(v)
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	if d.QRErr != nil {
		utils.LogEvent(utils.RequestID(ctx), "tickets", "qr_fallback", fmt.Sprintf("booking_id=%d err=%v", d.BookingID, d.QRErr))
	}

	var errs []error
	if err := os.WriteFile(filepath.Join(dir, textTicketName(d.BookingID)), buildTextTicket(d), 0o644); err != nil {
		errs = append(errs, fmt.Errorf("text ticket: %w", err))
	}
	if d.QR != nil {
		if err := os.WriteFile(filepath.Join(dir, qrImageName(d.BookingID)), buildQRPBM(d.QR), 0o644); err != nil {
			errs = append(errs, fmt.Errorf("qr code: %w", err))
		}
	} else if err := os.WriteFile(filepath.Join(dir, qrPlaceholderName(d.BookingID)), buildQRPlaceholder(d), 0o644); err != nil {
		errs = append(errs, fmt.Errorf("qr placeholder: %w", err))
	}
	if s.PDF {
		pdf, name, err := buildETicketPDF(d)
		if err == nil {
			err = os.WriteFile(filepath.Join(dir, name), pdf, 0o644)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("pdf ticket: %w", err))
		}
	}

	utils.LogEvent(utils.RequestID(ctx), "tickets", "render",
		fmt.Sprintf("booking_id=%d code=%s qr=%t failures=%d", d.BookingID, d.Code, d.QR != nil, len(errs)))
	return errors.Join(errs...)
}

func (s TicketService) ticketData(v models.BookingView) ticketData {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	b := v.Booking
	d := ticketData{
		BookingID:     b.ID,
		PassengerName: b.PassengerName,
		Age:           b.Age,
		Gender:        b.Gender,
		TrainID:       b.TrainID,
		TravelClass:   b.TravelClass,
		Generated:     now(),
	}
	if v.TrainKnown {
		d.TrainName = v.Train.Name
		d.RouteFrom = v.Train.Origin
		d.RouteTo = v.Train.Destination
	}
	d.Payload = qrPayload(b)
	digest := blake2b.Sum256([]byte(d.Payload))
	d.Code = strings.ToUpper(hex.EncodeToString(digest[:6]))
	d.Grid = placeholderGrid(binary.BigEndian.Uint32(digest[:4]))

	encode := s.encode
	if encode == nil {
		encode = encodeQR
	}
	d.QR, d.QRErr = encode(d.Payload)
	if d.QRErr != nil {
		d.QR = nil
	}
	return d
}

// encodeQR encodes payload at the lowest error-correction level, without
// the quiet zone.
func encodeQR(payload string) ([][]bool, error) {
	q, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// qrPayload is the text carried by the booking's QR code.
func qrPayload(b models.Booking) string {
	return fmt.Sprintf("BookingID:%d;Name:%s;Age:%d;Train:%d;Class:%s",
		b.ID, b.PassengerName, b.Age, b.TrainID, b.TravelClass)
}

func placeholderGrid(seed uint32) [qrSize][qrSize]bool {
	var g [qrSize][qrSize]bool
	for y := 0; y < qrSize; y++ {
		for x := 0; x < qrSize; x++ {
			val := (seed + uint32(x*131+y*137)) & 0xFF
			g[y][x] = val%3 == 0
		}
	}
	return g
}

func textTicketName(id int64) string    { return fmt.Sprintf("booking_%d.txt", id) }
func qrPlaceholderName(id int64) string { return fmt.Sprintf("booking_%d_qr.txt", id) }
func qrImageName(id int64) string       { return fmt.Sprintf("booking_%d_qr.pbm", id) }

func buildTextTicket(d ticketData) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Booking ID: %d\n", d.BookingID)
	fmt.Fprintf(&buf, "Name: %s\n", d.PassengerName)
	fmt.Fprintf(&buf, "Age: %d\n", d.Age)
	fmt.Fprintf(&buf, "Gender: %s\n", d.Gender)
	fmt.Fprintf(&buf, "Train ID: %d\n", d.TrainID)
	fmt.Fprintf(&buf, "Class: %s\n", d.TravelClass)
	fmt.Fprintf(&buf, "Code: %s\n", d.Code)
	fmt.Fprintf(&buf, "Generated: %s\n", d.Generated.Format(time.ANSIC))
	return buf.Bytes()
}

// buildQRPBM writes modules as a plain (P1) PBM image, 1 for a dark module.
func buildQRPBM(modules [][]bool) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P1\n%d %d\n", len(modules), len(modules))
	for _, row := range modules {
		for _, dark := range row {
			if dark {
				buf.WriteString("1 ")
			} else {
				buf.WriteString("0 ")
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func buildQRPlaceholder(d ticketData) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "ASCII QR placeholder for Booking %d\n\n", d.BookingID)
	for y := 0; y < qrSize; y++ {
		for x := 0; x < qrSize; x++ {
			if d.Grid[y][x] {
				buf.WriteByte('#')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RAILWAY E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID : #%d", d.BookingID),
		fmt.Sprintf("Passenger  : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Age        : %d", d.Age),
		fmt.Sprintf("Gender     : %s", safe(d.Gender, "-")),
		fmt.Sprintf("Train      : %s (#%d)", safe(d.TrainName, "Unknown"), d.TrainID),
		fmt.Sprintf("Route      : %s -> %s", safe(d.RouteFrom, "-"), safe(d.RouteTo, "-")),
		fmt.Sprintf("Class      : %s", safe(d.TravelClass, "-")),
		fmt.Sprintf("Code       : %s", d.Code),
		fmt.Sprintf("Generated  : %s", utils.FormatDateTime(d.Generated)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	modules, note := d.QR, "Note: scan the QR code when boarding. Valid for one passenger."
	if modules == nil {
		modules = make([][]bool, qrSize)
		for y := range modules {
			modules[y] = d.Grid[y][:]
		}
		note = "Note: placeholder code, not scannable. Valid for one passenger; show it when boarding."
	}
	// About 60mm wide whatever the QR version, inside a four-module quiet zone.
	cell := 60.0 / float64(len(modules))
	left, top := pdf.GetX()+cell*4, pdf.GetY()+cell*4
	pdf.SetFillColor(0, 0, 0)
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				pdf.Rect(left+float64(x)*cell, top+float64(y)*cell, cell, cell, "F")
			}
		}
	}
	pdf.SetY(top + float64(len(modules))*cell + cell*4 + 6)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("booking_%d.pdf", d.BookingID), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

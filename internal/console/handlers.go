package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"railway/internal/domain"
	"railway/internal/domain/models"
)

func (c *Console) listTrains(ctx context.Context) {
	c.println("")
	c.println(c.styles.heading.Render("Available Trains:"))
	c.println("ID   Name               From -> To           Seats Avail")
	c.println("-------------------------------------------------------")
	for _, a := range c.Ledger.Availability(ctx) {
		c.printf("%-4d %-18s %-10s -> %-10s %5d\n",
			a.Train.ID, a.Train.Name, a.Train.Origin, a.Train.Destination, a.Available)
	}
}

func (c *Console) bookTicket(ctx context.Context) error {
	var candidate models.Booking

	c.println("")
	c.println(c.styles.heading.Render("--- Book Ticket ---"))
	c.prompt("Enter passenger name: ")
	name, err := c.readLine()
	if err != nil {
		return err
	}
	for strings.TrimSpace(name) == "" {
		c.prompt("Name cannot be empty. Enter passenger name: ")
		if name, err = c.readLine(); err != nil {
			return err
		}
	}
	candidate.PassengerName = name

	c.prompt("Enter age: ")
	age, ok, err := c.readInt()
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid input. Booking canceled.")
		return nil
	}
	candidate.Age = age

	c.prompt("Enter gender (Male/Female/Other): ")
	if candidate.Gender, err = c.readLine(); err != nil {
		return err
	}

	c.listTrains(ctx)
	c.prompt("Enter train ID to book: ")
	trainID, ok, err := c.readInt()
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid train ID. Booking canceled.")
		return nil
	}
	candidate.TrainID = trainID

	// Reject early so the operator is not asked for a class in vain; Book
	// repeats these checks.
	train, available, found := c.trainAvailability(ctx, trainID)
	if !found {
		c.println("Train ID not found. Booking canceled.")
		return nil
	}
	if available <= 0 {
		c.printf("Sorry, no seats available on %s.\n", train.Name)
		return nil
	}

	c.prompt("Enter travel class (e.g. Sleeper, AC, 2A): ")
	if candidate.TravelClass, err = c.readLine(); err != nil {
		return err
	}

	booking, err := c.Ledger.Book(ctx, candidate)
	if booking.ID == 0 {
		c.println("")
		c.reportError(err)
		return nil
	}
	if err != nil {
		c.reportError(err)
	}
	c.println("")
	c.println(c.styles.success.Render(fmt.Sprintf("Booking successful! Booking ID: %d", booking.ID)))
	c.printf("Passenger: %s | Train: %s (%s -> %s) | Class: %s\n",
		booking.PassengerName, train.Name, train.Origin, train.Destination, booking.TravelClass)
	return nil
}

func (c *Console) trainAvailability(ctx context.Context, trainID int) (models.Train, int, bool) {
	for _, a := range c.Ledger.Availability(ctx) {
		if a.Train.ID == trainID {
			return a.Train, a.Available, true
		}
	}
	return models.Train{}, 0, false
}

func (c *Console) viewBookings(ctx context.Context) {
	header := false
	for v := range c.Ledger.List(ctx) {
		if !header {
			c.println("")
			c.println(c.styles.heading.Render("--- All Bookings ---"))
			c.println("ID  Name                          Age Gender  Train           Class")
			c.println("---------------------------------------------------------------------")
			header = true
		}
		c.printf("%-4d %-28s %-3d  %-6s  %-15s %-s\n",
			v.Booking.ID, v.Booking.PassengerName, v.Booking.Age, v.Booking.Gender,
			trainName(v), v.Booking.TravelClass)
	}
	if !header {
		c.println("")
		c.println("No bookings found.")
	}
}

func (c *Console) searchBooking(ctx context.Context) error {
	c.println("")
	c.prompt("Enter Booking ID to search: ")
	id, ok, err := c.readInt()
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid input.")
		return nil
	}

	v, err := c.Ledger.Find(ctx, domain.ID(id))
	if err != nil {
		c.printf("Booking with ID %d not found.\n", id)
		return nil
	}
	c.println("")
	c.println(c.styles.heading.Render("Booking found:"))
	c.printf("Booking ID: %d\n", v.Booking.ID)
	c.printf("Name: %s\n", v.Booking.PassengerName)
	c.printf("Age: %d\n", v.Booking.Age)
	c.printf("Gender: %s\n", v.Booking.Gender)
	c.printf("Train: %s (%s -> %s)\n", trainName(v), v.Train.Origin, v.Train.Destination)
	c.printf("Class: %s\n", v.Booking.TravelClass)
	return nil
}

func (c *Console) cancelBooking(ctx context.Context) error {
	c.println("")
	c.prompt("Enter Booking ID to cancel: ")
	id, ok, err := c.readInt()
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid input.")
		return nil
	}

	err = c.Ledger.Cancel(ctx, domain.ID(id))
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		c.printf("Booking ID %d not found.\n", id)
		return nil
	case err != nil:
		c.reportError(err)
	}
	c.println(c.styles.success.Render(fmt.Sprintf("Booking %d canceled successfully.", id)))
	return nil
}

func trainName(v models.BookingView) string {
	if !v.TrainKnown {
		return "Unknown"
	}
	return v.Train.Name
}

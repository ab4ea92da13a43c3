package domain

// Stylist is a salon employee appointments are booked with
type Stylist struct {
	ID      int64
	SalonID int64
	Name    string
}

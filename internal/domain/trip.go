package domain

import (
	"time"
)

type TripStatus string

const (
	TripStatusBooked    TripStatus = "BOOKED"
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

type PaymentState string

const (
	PaymentStatePending   PaymentState = "PENDING"
	PaymentStateCompleted PaymentState = "COMPLETED"
	PaymentStateFailed    PaymentState = "FAILED"
)

// RoutePoint is one GPS sample recorded during an ongoing trip.
type RoutePoint struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type Fare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency" gorm:"default:EGP"`
}

// Trip is one rental session from booking to completion.
//
// Status only moves forward (BOOKED → ONGOING → COMPLETED, or → CANCELLED),
// Route is append-only once ONGOING, and EndLocation must be confirmed before
// the trip may start.
type Trip struct {
	ID        string `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"index:idx_trips_user_start"`
	ScooterID string `json:"scooter_id" gorm:"index"`

	StartTime time.Time  `json:"start_time" gorm:"index:idx_trips_user_start,sort:desc"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	StartLocation Location  `json:"start_location" gorm:"embedded;embeddedPrefix:start_"`
	EndLocation   *Location `json:"end_location,omitempty" gorm:"embedded;embeddedPrefix:end_"`

	Status TripStatus `json:"status" gorm:"index"`

	Distance float64 `json:"distance"` // meters
	Duration int     `json:"duration"` // seconds

	Route []RoutePoint `json:"route" gorm:"serializer:json"`

	Fare          Fare         `json:"fare" gorm:"embedded;embeddedPrefix:fare_"`
	PaymentStatus PaymentState `json:"payment_status"`

	// Live-ride estimates refreshed on every location update.
	DistanceRemainingKm float64    `json:"distance_remaining_km,omitempty"`
	MinsRemaining       int        `json:"mins_remaining,omitempty"`
	EstimatedArrival    *time.Time `json:"estimated_arrival,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrentLocation is the latest route sample, falling back to the start
// location before any sample exists.
func (t *Trip) CurrentLocation() Location {
	if n := len(t.Route); n > 0 {
		last := t.Route[n-1]
		return Location{Latitude: last.Latitude, Longitude: last.Longitude}
	}
	return t.StartLocation
}

// HasDestination reports whether the destination has been confirmed.
func (t *Trip) HasDestination() bool {
	return t.EndLocation != nil
}

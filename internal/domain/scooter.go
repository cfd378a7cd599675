package domain

import (
	"time"
)

type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "Available"
	ScooterStatusInUse       ScooterStatus = "In Use"
	ScooterStatusReserved    ScooterStatus = "Reserved"
	ScooterStatusMaintenance ScooterStatus = "Maintenance"
	ScooterStatusOffline     ScooterStatus = "Offline"
)

// Location is a named point. Stored embedded; lat/lng in degrees.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Name      string  `json:"name,omitempty"`
}

type Scooter struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name"`
	Number       string        `json:"number" gorm:"uniqueIndex"`
	QRCode       string        `json:"qr_code"`
	Status       ScooterStatus `json:"status" gorm:"index"`
	BatteryLevel int           `json:"battery_level"` // 0..100
	Location     Location      `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	LastBookedAt *time.Time    `json:"last_booked_at,omitempty"`

	// Invariant: Status == Available ⇔ BookedBy == nil ∧ CurrentTrip == nil.
	BookedBy    *string `json:"booked_by,omitempty" gorm:"index"`
	CurrentTrip *string `json:"current_trip,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bookable reports whether the scooter can be reserved right now.
func (s *Scooter) Bookable() bool {
	return s.Status == ScooterStatusAvailable
}

package domain

import (
	"time"
)

// TripView is the flattened projection served to the live-ride screen.
type TripView struct {
	Trip
	Current       Location      `json:"current_location"`
	Battery       int           `json:"battery"`
	ScooterStatus ScooterStatus `json:"scooter_status"`
}

// LiveUpdate is the response to one live-location sample.
type LiveUpdate struct {
	TripID              string     `json:"trip_id"`
	Time                int        `json:"time"`     // elapsed seconds
	Distance            float64    `json:"distance"` // meters travelled
	Cost                float64    `json:"cost"`
	DistanceRemainingKm float64    `json:"distance_remaining_km"`
	MinsRemaining       int        `json:"mins_remaining"`
	EstimatedArrival    *time.Time `json:"estimated_arrival,omitempty"`
}

// TripSummary is returned when a trip ends.
type TripSummary struct {
	TripID    string    `json:"trip_id"`
	Duration  int       `json:"duration"`
	Distance  float64   `json:"distance"`
	Fare      Fare      `json:"fare"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// TripDetails is the owner-scoped history detail view.
type TripDetails struct {
	TripID      string       `json:"trip_id"`
	Status      TripStatus   `json:"status"`
	IsPaid      bool         `json:"is_paid"`
	Date        string       `json:"date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time,omitempty"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	DistanceKm  float64      `json:"distance_km"`
	DurationMin float64      `json:"duration_min"`
	AvgSpeedKmh float64      `json:"avg_speed_kmh"`
	TotalFare   float64      `json:"total_fare"`
	Currency    string       `json:"currency"`
	Route       []RoutePoint `json:"route"`
}

// RideDetails is the receipt-style view combining trip, scooter, and payment.
type RideDetails struct {
	Status        TripStatus `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	Date          string     `json:"date"`
	TimeRange     string     `json:"time_range"`
	DistanceKm    float64    `json:"distance_km"`
	DurationMin   float64    `json:"duration_min"`
	AvgSpeedKmh   float64    `json:"avg_speed_kmh"`
	TotalCost     string     `json:"total_cost"`
	StartLocation string     `json:"start_location"`
	EndLocation   string     `json:"end_location"`
	Scooter       struct {
		Number       string `json:"number"`
		Model        string `json:"model"`
		BatteryLevel int    `json:"battery_level"`
	} `json:"scooter"`
}

// GatewayCallback is the payload the payment gateway posts to our webhook.
type GatewayCallback struct {
	MerchantRefNumber string  `json:"merchantRefNumber"`
	ReferenceNumber   string  `json:"fawryRefNumber"`
	OrderAmount       float64 `json:"orderAmount"`
	OrderStatus       string  `json:"orderStatus"`
	Signature         string  `json:"signature"`
}

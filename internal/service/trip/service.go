package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/adapter/queue"
	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/geo"
	"github.com/scoot-me/scootme/internal/observability/telemetry"
	"github.com/scoot-me/scootme/internal/ports"
)

// Broadcaster pushes live updates to riders watching a trip.
type Broadcaster interface {
	Broadcast(tripID string, v interface{})
}

type Service struct {
	trips    ports.TripRepository
	users    ports.UserRepository
	scooters ports.ScooterService
	route    ports.RouteClient
	queue    queue.MessageQueue
	hub      Broadcaster
	email    ports.EmailService
	fare     FareCalculator
	log      *zap.Logger
}

func NewService(
	trips ports.TripRepository,
	users ports.UserRepository,
	scooters ports.ScooterService,
	route ports.RouteClient,
	mq queue.MessageQueue,
	hub Broadcaster,
	email ports.EmailService,
	fare FareCalculator,
	log *zap.Logger,
) ports.TripService {
	return &Service{
		trips:    trips,
		users:    users,
		scooters: scooters,
		route:    route,
		queue:    mq,
		hub:      hub,
		email:    email,
		fare:     fare,
		log:      log,
	}
}

// Book reserves the scooter and opens a BOOKED trip. Reservation is atomic,
// so when two riders scan the same scooter only one gets the trip.
func (s *Service) Book(ctx context.Context, scooterID, userID string) (*domain.Trip, error) {
	sc, err := s.scooters.Reserve(ctx, scooterID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trip := &domain.Trip{
		ID:            uuid.NewString(),
		UserID:        userID,
		ScooterID:     scooterID,
		StartTime:     now,
		StartLocation: sc.Location,
		Status:        domain.TripStatusBooked,
		Fare:          domain.Fare{Currency: s.fare.Currency},
		PaymentStatus: domain.PaymentStatePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.trips.Save(ctx, trip); err != nil {
		if relErr := s.scooters.Release(ctx, scooterID); relErr != nil {
			s.log.Error("Failed to release scooter after booking failure",
				zap.String("scooter_id", scooterID),
				zap.Error(relErr),
			)
		}
		return nil, err
	}

	if err := s.scooters.AttachTrip(ctx, scooterID, trip.ID); err != nil {
		s.log.Warn("Failed to attach trip to scooter",
			zap.String("trip_id", trip.ID),
			zap.Error(err),
		)
	}

	s.publish(queue.SubjectTripBooked, map[string]string{
		"trip_id":    trip.ID,
		"user_id":    userID,
		"scooter_id": scooterID,
	})

	s.log.Info("Trip booked",
		zap.String("trip_id", trip.ID),
		zap.String("scooter_id", scooterID),
		zap.String("user_id", userID),
	)
	return trip, nil
}

// ConfirmDestination pins where the rider wants to go. Required before the
// trip can start; riders can also reroute mid-ride.
func (s *Service) ConfirmDestination(ctx context.Context, tripID string, dest domain.Location) (*domain.Trip, error) {
	if err := validateCoordinates(dest.Latitude, dest.Longitude); err != nil {
		return nil, err
	}

	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusBooked && trip.Status != domain.TripStatusOngoing {
		return nil, fmt.Errorf("%w: destination cannot change on a %s trip", domain.ErrInvalidState, trip.Status)
	}

	trip.EndLocation = &dest
	from := trip.StartLocation
	if trip.Status == domain.TripStatusOngoing {
		from = trip.CurrentLocation()
	}
	s.refreshEstimates(ctx, trip, from, time.Now())

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Start flips a booked trip to ONGOING and puts the scooter in use.
func (s *Service) Start(ctx context.Context, tripID, userID string) (*domain.Trip, error) {
	trip, err := s.findOwnedTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusBooked {
		return nil, fmt.Errorf("%w: trip is %s", domain.ErrInvalidState, trip.Status)
	}
	if !trip.HasDestination() {
		return nil, fmt.Errorf("%w: destination must be confirmed before starting", domain.ErrInvalidState)
	}

	trip.Status = domain.TripStatusOngoing
	trip.StartTime = time.Now()
	trip.Route = []domain.RoutePoint{{
		Latitude:  trip.StartLocation.Latitude,
		Longitude: trip.StartLocation.Longitude,
		Timestamp: trip.StartTime,
	}}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err := s.scooters.UpdateStatus(ctx, trip.ScooterID, domain.ScooterStatusInUse); err != nil {
		s.log.Warn("Failed to mark scooter in use",
			zap.String("scooter_id", trip.ScooterID),
			zap.Error(err),
		)
	}

	telemetry.ActiveTrips.Inc()
	s.publish(queue.SubjectTripStarted, map[string]string{
		"trip_id":    trip.ID,
		"user_id":    userID,
		"scooter_id": trip.ScooterID,
	})

	s.log.Info("Trip started", zap.String("trip_id", trip.ID))
	return trip, nil
}

// UpdateLocation records one GPS sample: distance and fare accrue, remaining
// distance and ETA are refreshed, and watchers get the update pushed.
func (s *Service) UpdateLocation(ctx context.Context, tripID, userID string, lat, lng float64) (*domain.LiveUpdate, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	trip, err := s.findOwnedTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusOngoing {
		return nil, fmt.Errorf("%w: trip is %s", domain.ErrInvalidState, trip.Status)
	}

	now := time.Now()
	current := trip.CurrentLocation()

	// GPS stalls repeat the same fix; skip the zero-length segment but keep
	// accruing time and fare.
	duplicate := len(trip.Route) > 0 &&
		current.Latitude == lat && current.Longitude == lng
	if !duplicate {
		trip.Distance += geo.Haversine(current.Latitude, current.Longitude, lat, lng)
		trip.Route = append(trip.Route, domain.RoutePoint{
			Latitude:  lat,
			Longitude: lng,
			Timestamp: now,
		})
	}

	elapsed := now.Sub(trip.StartTime)
	trip.Duration = int(elapsed.Seconds())
	trip.Fare.Amount = s.fare.Calculate(elapsed)

	s.refreshEstimates(ctx, trip, domain.Location{Latitude: lat, Longitude: lng}, now)

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	telemetry.LocationUpdatesTotal.Inc()

	update := &domain.LiveUpdate{
		TripID:              trip.ID,
		Time:                trip.Duration,
		Distance:            trip.Distance,
		Cost:                trip.Fare.Amount,
		DistanceRemainingKm: trip.DistanceRemainingKm,
		MinsRemaining:       trip.MinsRemaining,
		EstimatedArrival:    trip.EstimatedArrival,
	}

	if s.hub != nil {
		s.hub.Broadcast(trip.ID, update)
	}

	return update, nil
}

// End completes the trip, freezes the fare, and frees the scooter. Payment
// stays PENDING until the gateway confirms it.
func (s *Service) End(ctx context.Context, tripID, userID string) (*domain.TripSummary, error) {
	trip, err := s.findOwnedTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusOngoing {
		return nil, fmt.Errorf("%w: trip is %s", domain.ErrInvalidState, trip.Status)
	}

	now := time.Now()
	elapsed := now.Sub(trip.StartTime)

	trip.Status = domain.TripStatusCompleted
	trip.EndTime = &now
	trip.Duration = int(elapsed.Seconds())
	trip.Fare.Amount = s.fare.Calculate(elapsed)

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err := s.scooters.Release(ctx, trip.ScooterID); err != nil {
		s.log.Error("Failed to release scooter after trip end",
			zap.String("scooter_id", trip.ScooterID),
			zap.Error(err),
		)
	}

	telemetry.ActiveTrips.Dec()
	telemetry.TripsCompletedTotal.Inc()
	telemetry.FareChargedTotal.Add(trip.Fare.Amount)

	s.publish(queue.SubjectTripEnded, map[string]interface{}{
		"trip_id":    trip.ID,
		"user_id":    userID,
		"scooter_id": trip.ScooterID,
		"fare":       trip.Fare.Amount,
		"distance":   trip.Distance,
		"duration":   trip.Duration,
	})

	summary := &domain.TripSummary{
		TripID:    trip.ID,
		Duration:  trip.Duration,
		Distance:  trip.Distance,
		Fare:      trip.Fare,
		StartTime: trip.StartTime,
		EndTime:   now,
	}

	s.sendReceipt(ctx, trip.UserID, summary)

	s.log.Info("Trip ended",
		zap.String("trip_id", trip.ID),
		zap.Float64("fare", trip.Fare.Amount),
		zap.Float64("distance_m", trip.Distance),
	)
	return summary, nil
}

// Get returns the live-ride view, folding in scooter battery and status.
func (s *Service) Get(ctx context.Context, tripID string) (*domain.TripView, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	view := &domain.TripView{
		Trip:    *trip,
		Current: trip.CurrentLocation(),
	}

	sc, err := s.scooters.Get(ctx, trip.ScooterID)
	if err != nil {
		s.log.Warn("Failed to load scooter for trip view",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
		return view, nil
	}
	view.Battery = sc.BatteryLevel
	view.ScooterStatus = sc.Status

	return view, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.trips.FindByUserID(ctx, userID)
}

// Details is the owner-scoped view behind the trip history screen.
func (s *Service) Details(ctx context.Context, tripID, userID string) (*domain.TripDetails, error) {
	trip, err := s.findOwnedTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	distanceKm := trip.Distance / 1000
	durationMin := float64(trip.Duration) / 60

	details := &domain.TripDetails{
		TripID:      trip.ID,
		Status:      trip.Status,
		IsPaid:      trip.PaymentStatus == domain.PaymentStateCompleted,
		Date:        trip.StartTime.Format("02 Jan 2006"),
		StartTime:   trip.StartTime.Format("3:04 PM"),
		From:        locationName(trip.StartLocation, "Start"),
		DistanceKm:  round2(distanceKm),
		DurationMin: round2(durationMin),
		AvgSpeedKmh: round2(avgSpeedKmh(trip.Distance, trip.Duration)),
		TotalFare:   trip.Fare.Amount,
		Currency:    trip.Fare.Currency,
		Route:       trip.Route,
	}
	if trip.EndTime != nil {
		details.EndTime = trip.EndTime.Format("3:04 PM")
	}
	if trip.EndLocation != nil {
		details.To = locationName(*trip.EndLocation, "Destination")
	}

	return details, nil
}

// RideDetails is the receipt view joining trip and scooter.
func (s *Service) RideDetails(ctx context.Context, tripID string) (*domain.RideDetails, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	timeRange := trip.StartTime.Format("3:04 PM")
	if trip.EndTime != nil {
		timeRange += " - " + trip.EndTime.Format("3:04 PM")
	}

	details := &domain.RideDetails{
		Status:        trip.Status,
		PaymentStatus: string(trip.PaymentStatus),
		Date:          trip.StartTime.Format("02 Jan 2006"),
		TimeRange:     timeRange,
		DistanceKm:    round2(trip.Distance / 1000),
		DurationMin:   round2(float64(trip.Duration) / 60),
		AvgSpeedKmh:   round2(avgSpeedKmh(trip.Distance, trip.Duration)),
		TotalCost:     fmt.Sprintf("%.2f %s", trip.Fare.Amount, trip.Fare.Currency),
		StartLocation: locationName(trip.StartLocation, "Start"),
	}
	if trip.EndLocation != nil {
		details.EndLocation = locationName(*trip.EndLocation, "Destination")
	}

	if sc, err := s.scooters.Get(ctx, trip.ScooterID); err == nil {
		details.Scooter.Number = sc.Number
		details.Scooter.Model = sc.Name
		details.Scooter.BatteryLevel = sc.BatteryLevel
	}

	return details, nil
}

func (s *Service) findTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip %s", domain.ErrNotFound, tripID)
	}
	return trip, nil
}

func (s *Service) findOwnedTrip(ctx context.Context, tripID, userID string) (*domain.Trip, error) {
	trip, err := s.findTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, fmt.Errorf("%w: trip belongs to another rider", domain.ErrForbidden)
	}
	return trip, nil
}

// refreshEstimates asks the routing service for distance and ETA to the
// destination. Failures keep the previous estimates; live updates must not
// stall because the router is down.
func (s *Service) refreshEstimates(ctx context.Context, trip *domain.Trip, from domain.Location, now time.Time) {
	if !trip.HasDestination() || s.route == nil {
		return
	}

	info, err := s.route.Route(ctx, from, *trip.EndLocation)
	if err != nil {
		telemetry.RoutingRequestsTotal.WithLabelValues("error").Inc()
		s.log.Warn("Failed to refresh route estimates",
			zap.String("trip_id", trip.ID),
			zap.Error(err),
		)
		return
	}
	telemetry.RoutingRequestsTotal.WithLabelValues("ok").Inc()

	eta := now.Add(time.Duration(info.DurationSeconds) * time.Second)
	trip.DistanceRemainingKm = round2(info.DistanceMeters / 1000)
	trip.MinsRemaining = int(math.Ceil(info.DurationSeconds / 60))
	trip.EstimatedArrival = &eta
}

func (s *Service) sendReceipt(ctx context.Context, userID string, summary *domain.TripSummary) {
	if s.email == nil {
		return
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return
	}
	if !user.Settings.EmailNotifications {
		return
	}
	if err := s.email.SendTripReceipt(ctx, user, summary); err != nil {
		s.log.Warn("Failed to send trip receipt",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *Service) publish(subject string, payload interface{}) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.queue.Publish(subject, data); err != nil {
		s.log.Warn("Failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %f out of range", domain.ErrValidation, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %f out of range", domain.ErrValidation, lng)
	}
	return nil
}

func locationName(loc domain.Location, fallback string) string {
	if loc.Name != "" {
		return loc.Name
	}
	return fallback
}

func avgSpeedKmh(distanceMeters float64, durationSeconds int) float64 {
	if durationSeconds == 0 {
		return 0
	}
	return (distanceMeters / 1000) / (float64(durationSeconds) / 3600)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

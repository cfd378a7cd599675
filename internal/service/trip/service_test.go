package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/adapter/queue"
	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/mocks"
	"github.com/scoot-me/scootme/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func testFare() FareCalculator {
	return NewFareCalculator(5.0, 0.5, "EGP")
}

func newTestService(trips *mocks.MockTripRepository, scooters *mocks.MockScooterService, mq *mocks.MockMessageQueue) ports.TripService {
	return NewService(
		trips,
		&mocks.MockUserRepository{},
		scooters,
		&mocks.MockRouteClient{},
		mq,
		nil,
		&mocks.MockEmailService{},
		testFare(),
		newTestLogger(),
	)
}

func TestBook_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var savedTrip *domain.Trip
	var attachedTrip string

	mockTrips := &mocks.MockTripRepository{
		SaveFunc: func(ctx context.Context, trip *domain.Trip) error {
			savedTrip = trip
			return nil
		},
	}
	mockScooters := &mocks.MockScooterService{
		ReserveFunc: func(ctx context.Context, id, userID string) (*domain.Scooter, error) {
			return &domain.Scooter{
				ID:       id,
				Status:   domain.ScooterStatusReserved,
				Location: domain.Location{Latitude: 30.0444, Longitude: 31.2357, Name: "Tahrir"},
			}, nil
		},
		AttachTripFunc: func(ctx context.Context, id, tripID string) error {
			attachedTrip = tripID
			return nil
		},
	}
	mq := mocks.NewMockMessageQueue()

	service := newTestService(mockTrips, mockScooters, mq)

	// Act
	trip, err := service.Book(ctx, "sc-1", "user-1")

	// Assert
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if trip.Status != domain.TripStatusBooked {
		t.Errorf("status = %s, want BOOKED", trip.Status)
	}
	if trip.StartLocation.Name != "Tahrir" {
		t.Errorf("start location = %+v, want the scooter's location", trip.StartLocation)
	}
	if trip.PaymentStatus != domain.PaymentStatePending {
		t.Errorf("payment status = %s, want PENDING", trip.PaymentStatus)
	}
	if savedTrip == nil {
		t.Fatal("expected trip to be saved")
	}
	if attachedTrip != trip.ID {
		t.Errorf("attached trip = %s, want %s", attachedTrip, trip.ID)
	}
	if len(mq.Published(queue.SubjectTripBooked)) != 1 {
		t.Error("expected a booked event to be published")
	}
}

func TestBook_ScooterTaken(t *testing.T) {
	mockScooters := &mocks.MockScooterService{
		ReserveFunc: func(ctx context.Context, id, userID string) (*domain.Scooter, error) {
			return nil, domain.ErrConflict
		},
	}

	service := newTestService(&mocks.MockTripRepository{}, mockScooters, mocks.NewMockMessageQueue())

	_, err := service.Book(context.Background(), "sc-1", "user-1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Book() error = %v, want ErrConflict", err)
	}
}

func TestBook_SaveFailureReleasesScooter(t *testing.T) {
	released := false

	mockTrips := &mocks.MockTripRepository{
		SaveFunc: func(ctx context.Context, trip *domain.Trip) error {
			return errors.New("database down")
		},
	}
	mockScooters := &mocks.MockScooterService{
		ReserveFunc: func(ctx context.Context, id, userID string) (*domain.Scooter, error) {
			return &domain.Scooter{ID: id}, nil
		},
		ReleaseFunc: func(ctx context.Context, id string) error {
			released = true
			return nil
		},
	}

	service := newTestService(mockTrips, mockScooters, mocks.NewMockMessageQueue())

	_, err := service.Book(context.Background(), "sc-1", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !released {
		t.Error("expected scooter to be released after save failure")
	}
}

func TestConfirmDestination_SetsEstimates(t *testing.T) {
	trip := &domain.Trip{
		ID:            "trip-1",
		UserID:        "user-1",
		Status:        domain.TripStatusBooked,
		StartLocation: domain.Location{Latitude: 30.0444, Longitude: 31.2357},
	}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	service := NewService(
		mockTrips,
		&mocks.MockUserRepository{},
		&mocks.MockScooterService{},
		&mocks.MockRouteClient{
			RouteFunc: func(ctx context.Context, from, to domain.Location) (*ports.RouteInfo, error) {
				return &ports.RouteInfo{DistanceMeters: 2500, DurationSeconds: 600}, nil
			},
		},
		mocks.NewMockMessageQueue(),
		nil,
		&mocks.MockEmailService{},
		testFare(),
		newTestLogger(),
	)

	got, err := service.ConfirmDestination(context.Background(), "trip-1", domain.Location{Latitude: 30.0626, Longitude: 31.2497, Name: "Campus"})
	if err != nil {
		t.Fatalf("ConfirmDestination() error = %v", err)
	}
	if !got.HasDestination() {
		t.Fatal("expected destination to be set")
	}
	if got.DistanceRemainingKm != 2.5 {
		t.Errorf("DistanceRemainingKm = %v, want 2.5", got.DistanceRemainingKm)
	}
	if got.MinsRemaining != 10 {
		t.Errorf("MinsRemaining = %v, want 10", got.MinsRemaining)
	}
	if got.EstimatedArrival == nil {
		t.Error("expected estimated arrival to be set")
	}
}

func TestConfirmDestination_MidRideReroutesFromCurrentLocation(t *testing.T) {
	oldDest := domain.Location{Latitude: 30.06, Longitude: 31.25, Name: "Library"}
	trip := &domain.Trip{
		ID:            "trip-1",
		UserID:        "user-1",
		Status:        domain.TripStatusOngoing,
		StartLocation: domain.Location{Latitude: 30.0444, Longitude: 31.2357},
		EndLocation:   &oldDest,
		Route: []domain.RoutePoint{
			{Latitude: 30.0444, Longitude: 31.2357, Timestamp: time.Now().Add(-2 * time.Minute)},
			{Latitude: 30.0500, Longitude: 31.2400, Timestamp: time.Now()},
		},
	}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	var routedFrom domain.Location
	service := NewService(
		mockTrips,
		&mocks.MockUserRepository{},
		&mocks.MockScooterService{},
		&mocks.MockRouteClient{
			RouteFunc: func(ctx context.Context, from, to domain.Location) (*ports.RouteInfo, error) {
				routedFrom = from
				return &ports.RouteInfo{DistanceMeters: 1200, DurationSeconds: 300}, nil
			},
		},
		mocks.NewMockMessageQueue(),
		nil,
		&mocks.MockEmailService{},
		testFare(),
		newTestLogger(),
	)

	got, err := service.ConfirmDestination(context.Background(), "trip-1", domain.Location{Latitude: 30.0700, Longitude: 31.2600, Name: "Stadium"})
	if err != nil {
		t.Fatalf("ConfirmDestination() error = %v", err)
	}
	if got.EndLocation == nil || got.EndLocation.Name != "Stadium" {
		t.Errorf("EndLocation = %+v, want the new destination", got.EndLocation)
	}
	// Estimates must restart from where the rider is, not from the trip origin.
	if routedFrom.Latitude != 30.0500 || routedFrom.Longitude != 31.2400 {
		t.Errorf("routed from %+v, want the latest route point", routedFrom)
	}
	if got.DistanceRemainingKm != 1.2 {
		t.Errorf("DistanceRemainingKm = %v, want 1.2", got.DistanceRemainingKm)
	}
}

func TestConfirmDestination_RejectsCompletedTrip(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, Status: domain.TripStatusCompleted}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.ConfirmDestination(context.Background(), "trip-1", domain.Location{Latitude: 30, Longitude: 31})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("ConfirmDestination() error = %v, want ErrInvalidState", err)
	}
}

func TestConfirmDestination_BadCoordinates(t *testing.T) {
	service := newTestService(&mocks.MockTripRepository{}, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.ConfirmDestination(context.Background(), "trip-1", domain.Location{Latitude: 95, Longitude: 31})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ConfirmDestination() error = %v, want ErrValidation", err)
	}
}

func TestStart_RequiresDestination(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, UserID: "user-1", Status: domain.TripStatusBooked}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.Start(context.Background(), "trip-1", "user-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Start() error = %v, want ErrInvalidState", err)
	}
}

func TestStart_Success(t *testing.T) {
	dest := domain.Location{Latitude: 30.06, Longitude: 31.25}
	var scooterStatus domain.ScooterStatus

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{
				ID:            id,
				UserID:        "user-1",
				ScooterID:     "sc-1",
				Status:        domain.TripStatusBooked,
				StartLocation: domain.Location{Latitude: 30.0444, Longitude: 31.2357},
				EndLocation:   &dest,
			}, nil
		},
	}
	mockScooters := &mocks.MockScooterService{
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.ScooterStatus) error {
			scooterStatus = status
			return nil
		},
	}
	mq := mocks.NewMockMessageQueue()

	service := newTestService(mockTrips, mockScooters, mq)

	trip, err := service.Start(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if trip.Status != domain.TripStatusOngoing {
		t.Errorf("status = %s, want ONGOING", trip.Status)
	}
	if scooterStatus != domain.ScooterStatusInUse {
		t.Errorf("scooter status = %s, want In Use", scooterStatus)
	}
	if len(trip.Route) != 1 {
		t.Fatalf("route has %d points, want the start sample", len(trip.Route))
	}
	if trip.Route[0].Latitude != 30.0444 || trip.Route[0].Longitude != 31.2357 {
		t.Errorf("route[0] = %+v, want the start coordinates", trip.Route[0])
	}
	if len(mq.Published(queue.SubjectTripStarted)) != 1 {
		t.Error("expected a started event to be published")
	}
}

func TestStart_WrongOwner(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, UserID: "someone-else", Status: domain.TripStatusBooked}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.Start(context.Background(), "trip-1", "user-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Start() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateLocation_AccruesDistanceAndFare(t *testing.T) {
	start := time.Now().Add(-125 * time.Second)
	trip := &domain.Trip{
		ID:            "trip-1",
		UserID:        "user-1",
		Status:        domain.TripStatusOngoing,
		StartTime:     start,
		StartLocation: domain.Location{Latitude: 30.0444, Longitude: 31.2357},
	}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	// Roughly 1.1 km due north of the start
	update, err := service.UpdateLocation(context.Background(), "trip-1", "user-1", 30.0544, 31.2357)
	if err != nil {
		t.Fatalf("UpdateLocation() error = %v", err)
	}

	if update.Distance < 1100 || update.Distance > 1130 {
		t.Errorf("Distance = %v, want ~1113 meters", update.Distance)
	}
	// 125s elapsed rounds up to 3 minutes: 5 + 3*0.5
	if update.Cost != 6.5 {
		t.Errorf("Cost = %v, want 6.5", update.Cost)
	}
	if update.Time < 124 || update.Time > 127 {
		t.Errorf("Time = %v, want ~125 seconds", update.Time)
	}
	if len(trip.Route) != 1 {
		t.Errorf("route has %d points, want 1", len(trip.Route))
	}
}

func TestUpdateLocation_SkipsDuplicateSamples(t *testing.T) {
	start := time.Now().Add(-time.Minute)
	trip := &domain.Trip{
		ID:            "trip-1",
		UserID:        "user-1",
		Status:        domain.TripStatusOngoing,
		StartTime:     start,
		StartLocation: domain.Location{Latitude: 30.0444, Longitude: 31.2357},
		Distance:      500,
		Route: []domain.RoutePoint{
			{Latitude: 30.0500, Longitude: 31.2357, Timestamp: start},
		},
	}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	update, err := service.UpdateLocation(context.Background(), "trip-1", "user-1", 30.0500, 31.2357)
	if err != nil {
		t.Fatalf("UpdateLocation() error = %v", err)
	}

	if update.Distance != 500 {
		t.Errorf("Distance = %v, want unchanged 500", update.Distance)
	}
	if len(trip.Route) != 1 {
		t.Errorf("route has %d points, want duplicate dropped", len(trip.Route))
	}
	if update.Cost == 0 {
		t.Error("fare should still accrue on duplicate samples")
	}
}

func TestUpdateLocation_RejectsCompletedTrip(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, UserID: "user-1", Status: domain.TripStatusCompleted}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.UpdateLocation(context.Background(), "trip-1", "user-1", 30.05, 31.23)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("UpdateLocation() error = %v, want ErrInvalidState", err)
	}
}

func TestEnd_CompletesTripAndReleasesScooter(t *testing.T) {
	// Off the minute boundary so the wall-clock delta inside End cannot tip
	// the elapsed time into the next billed minute.
	start := time.Now().Add(-9*time.Minute - 30*time.Second)
	trip := &domain.Trip{
		ID:        "trip-1",
		UserID:    "user-1",
		ScooterID: "sc-1",
		Status:    domain.TripStatusOngoing,
		StartTime: start,
		Distance:  3200,
		Fare:      domain.Fare{Currency: "EGP"},
	}

	released := false

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return trip, nil
		},
	}
	mockScooters := &mocks.MockScooterService{
		ReleaseFunc: func(ctx context.Context, id string) error {
			released = true
			return nil
		},
	}
	mq := mocks.NewMockMessageQueue()

	service := newTestService(mockTrips, mockScooters, mq)

	summary, err := service.End(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}

	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", trip.Status)
	}
	if trip.PaymentStatus == domain.PaymentStateCompleted {
		t.Error("payment must stay pending until the gateway confirms")
	}
	if trip.EndTime == nil {
		t.Error("expected end time to be set")
	}
	if !released {
		t.Error("expected scooter to be released")
	}
	// 9m30s rounds up to 10 billed minutes: 5 + 10*0.5
	if summary.Fare.Amount != 10.0 {
		t.Errorf("fare = %v, want 10.0", summary.Fare.Amount)
	}
	if summary.Distance != 3200 {
		t.Errorf("distance = %v, want 3200", summary.Distance)
	}
	if len(mq.Published(queue.SubjectTripEnded)) != 1 {
		t.Error("expected an ended event to be published")
	}
}

func TestEnd_RejectsNotOngoing(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, UserID: "user-1", Status: domain.TripStatusBooked}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.End(context.Background(), "trip-1", "user-1")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("End() error = %v, want ErrInvalidState", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	service := newTestService(&mocks.MockTripRepository{}, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestDetails_WrongOwner(t *testing.T) {
	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{ID: id, UserID: "someone-else"}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	_, err := service.Details(context.Background(), "trip-1", "user-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Details() error = %v, want ErrForbidden", err)
	}
}

func TestDetails_FormatsView(t *testing.T) {
	start := time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	dest := domain.Location{Latitude: 30.06, Longitude: 31.25, Name: "Library"}

	mockTrips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			return &domain.Trip{
				ID:            id,
				UserID:        "user-1",
				Status:        domain.TripStatusCompleted,
				StartTime:     start,
				EndTime:       &end,
				StartLocation: domain.Location{Latitude: 30.04, Longitude: 31.23, Name: "Dorms"},
				EndLocation:   &dest,
				Distance:      4000,
				Duration:      1200,
				Fare:          domain.Fare{Amount: 15, Currency: "EGP"},
				PaymentStatus: domain.PaymentStateCompleted,
			}, nil
		},
	}

	service := newTestService(mockTrips, &mocks.MockScooterService{}, mocks.NewMockMessageQueue())

	details, err := service.Details(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if !details.IsPaid {
		t.Error("expected IsPaid for a completed payment")
	}
	if details.From != "Dorms" || details.To != "Library" {
		t.Errorf("From/To = %s/%s, want Dorms/Library", details.From, details.To)
	}
	if details.DistanceKm != 4.0 {
		t.Errorf("DistanceKm = %v, want 4.0", details.DistanceKm)
	}
	if details.DurationMin != 20.0 {
		t.Errorf("DurationMin = %v, want 20.0", details.DurationMin)
	}
	// 4 km in 20 minutes is 12 km/h
	if details.AvgSpeedKmh != 12.0 {
		t.Errorf("AvgSpeedKmh = %v, want 12.0", details.AvgSpeedKmh)
	}
}

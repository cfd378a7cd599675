package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/mocks"
)

func newTestService(trip *domain.Trip, saved *[]domain.Review) *Service {
	reviews := &mocks.MockReviewRepository{
		SaveFunc: func(ctx context.Context, r *domain.Review) error {
			if saved != nil {
				*saved = append(*saved, *r)
			}
			return nil
		},
	}
	trips := &mocks.MockTripRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Trip, error) {
			if trip != nil && trip.ID == id {
				return trip, nil
			}
			return nil, nil
		},
	}
	return NewService(reviews, trips, zap.NewNop()).(*Service)
}

func TestCreate(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "user-1", Status: domain.TripStatusCompleted}
	var saved []domain.Review
	svc := newTestService(trip, &saved)

	r, err := svc.Create(context.Background(), "user-1", "trip-1", 4, "brakes felt soft", []domain.ReviewIssue{domain.IssueBrakes})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if r.ID == "" {
		t.Error("expected a generated review ID")
	}
	if r.Rating != 4 {
		t.Errorf("rating = %d, want 4", r.Rating)
	}
	if len(saved) != 1 {
		t.Fatalf("expected one persisted review, got %d", len(saved))
	}
	if saved[0].Comment != "brakes felt soft" {
		t.Errorf("comment = %q", saved[0].Comment)
	}
}

func TestCreate_RatingOutOfRange(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "user-1", Status: domain.TripStatusCompleted}
	svc := newTestService(trip, nil)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Create(context.Background(), "user-1", "trip-1", rating, "", nil); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rating %d: expected ErrValidation, got %v", rating, err)
		}
	}
}

func TestCreate_UnknownIssue(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "user-1", Status: domain.TripStatusCompleted}
	svc := newTestService(trip, nil)

	_, err := svc.Create(context.Background(), "user-1", "trip-1", 3, "", []domain.ReviewIssue{"ENGINE"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreate_TripNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Create(context.Background(), "user-1", "trip-missing", 5, "", nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_WrongOwner(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "someone-else", Status: domain.TripStatusCompleted}
	svc := newTestService(trip, nil)

	_, err := svc.Create(context.Background(), "user-1", "trip-1", 5, "", nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreate_TripNotCompleted(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "user-1", Status: domain.TripStatusOngoing}
	svc := newTestService(trip, nil)

	_, err := svc.Create(context.Background(), "user-1", "trip-1", 5, "", nil)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCreate_CommentTooLong(t *testing.T) {
	trip := &domain.Trip{ID: "trip-1", UserID: "user-1", Status: domain.TripStatusCompleted}
	svc := newTestService(trip, nil)

	long := strings.Repeat("x", 501)
	_, err := svc.Create(context.Background(), "user-1", "trip-1", 5, long, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListByTrip(t *testing.T) {
	want := []domain.Review{
		{ID: "r1", TripID: "trip-1", Rating: 5},
		{ID: "r2", TripID: "trip-1", Rating: 2},
	}
	reviews := &mocks.MockReviewRepository{
		FindByTripIDFunc: func(ctx context.Context, tripID string) ([]domain.Review, error) {
			if tripID != "trip-1" {
				return nil, nil
			}
			return want, nil
		},
	}
	svc := NewService(reviews, &mocks.MockTripRepository{}, zap.NewNop())

	got, err := svc.ListByTrip(context.Background(), "trip-1")
	if err != nil {
		t.Fatalf("ListByTrip: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
}

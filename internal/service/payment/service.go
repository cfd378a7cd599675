package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/adapter/queue"
	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/observability/telemetry"
	"github.com/scoot-me/scootme/internal/ports"
)

type Service struct {
	payments ports.PaymentRepository
	trips    ports.TripRepository
	users    ports.UserRepository
	gateway  Provider
	queue    queue.MessageQueue
	email    ports.EmailService
	log      *zap.Logger
}

func NewService(
	payments ports.PaymentRepository,
	trips ports.TripRepository,
	users ports.UserRepository,
	gateway Provider,
	mq queue.MessageQueue,
	email ports.EmailService,
	log *zap.Logger,
) ports.PaymentService {
	return &Service{
		payments: payments,
		trips:    trips,
		users:    users,
		gateway:  gateway,
		queue:    mq,
		email:    email,
		log:      log,
	}
}

// Create opens a charge for a completed trip. The amount always comes from
// the trip's fare, never from the client. The PENDING row is persisted before
// the gateway call so a crash mid-charge leaves a reconcilable record.
func (s *Service) Create(ctx context.Context, userID, tripID string) (*domain.Payment, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("%w: trip %s", domain.ErrNotFound, tripID)
	}
	if trip.UserID != userID {
		return nil, fmt.Errorf("%w: trip belongs to another rider", domain.ErrForbidden)
	}
	if trip.Status != domain.TripStatusCompleted {
		return nil, fmt.Errorf("%w: trip is %s, only completed trips can be paid", domain.ErrInvalidState, trip.Status)
	}
	if trip.PaymentStatus == domain.PaymentStateCompleted {
		return nil, fmt.Errorf("%w: trip is already paid", domain.ErrConflict)
	}

	if existing, err := s.payments.FindByTripID(ctx, tripID); err != nil {
		return nil, err
	} else if existing != nil && existing.Status == domain.PaymentStatusPending {
		return existing, nil
	}

	now := time.Now()
	p := &domain.Payment{
		ID:             uuid.NewString(),
		UserID:         userID,
		TripID:         tripID,
		MerchantRefNum: uuid.NewString(),
		Amount: domain.Amount{
			Value:    trip.Fare.Amount,
			Currency: trip.Fare.Currency,
		},
		Method:    s.gateway.Method(),
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	if err := s.gateway.Charge(ctx, p); err != nil {
		p.GatewayStatus = "charge failed"
		if updateErr := s.payments.Update(ctx, p); updateErr != nil {
			s.log.Error("Failed to record gateway failure",
				zap.String("merchant_ref", p.MerchantRefNum),
				zap.Error(updateErr),
			)
		}
		return nil, err
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("Payment created",
		zap.String("merchant_ref", p.MerchantRefNum),
		zap.String("trip_id", tripID),
		zap.Float64("amount", p.Amount.Value),
	)
	return p, nil
}

// HandleCallback settles a payment from the gateway webhook. The signature is
// verified before anything else; a forged callback changes no state. Replays
// of an already settled payment are acknowledged without reprocessing.
func (s *Service) HandleCallback(ctx context.Context, cb domain.GatewayCallback) (*domain.Payment, error) {
	p, err := s.payments.FindByMerchantRef(ctx, cb.MerchantRefNumber)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: payment %s", domain.ErrNotFound, cb.MerchantRefNumber)
	}

	if !s.gateway.VerifyCallback(cb) {
		telemetry.PaymentCallbacksTotal.WithLabelValues("invalid_signature").Inc()
		s.log.Warn("Rejected payment callback with bad signature",
			zap.String("merchant_ref", cb.MerchantRefNumber),
		)
		return nil, fmt.Errorf("%w: invalid callback signature", domain.ErrUnauthorized)
	}

	if p.Settled() {
		telemetry.PaymentCallbacksTotal.WithLabelValues("replay").Inc()
		return p, nil
	}

	p.ReferenceNumber = cb.ReferenceNumber
	p.GatewayStatus = cb.OrderStatus
	p.SignatureReceived = cb.Signature
	p.CallbackData = map[string]any{
		"merchantRefNumber": cb.MerchantRefNumber,
		"fawryRefNumber":    cb.ReferenceNumber,
		"orderAmount":       cb.OrderAmount,
		"orderStatus":       cb.OrderStatus,
	}
	p.UpdatedAt = time.Now()

	paid := cb.OrderStatus == "PAID"
	if paid {
		p.Status = domain.PaymentStatusPaid
	} else {
		p.Status = domain.PaymentStatusFailed
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	s.mirrorToTrip(ctx, p, paid)

	if paid {
		telemetry.PaymentCallbacksTotal.WithLabelValues("paid").Inc()
		s.publish(queue.SubjectPaymentCompleted, p)
		s.notifyPaid(ctx, p)
	} else {
		telemetry.PaymentCallbacksTotal.WithLabelValues("failed").Inc()
		s.publish(queue.SubjectPaymentFailed, p)
	}

	s.log.Info("Payment callback processed",
		zap.String("merchant_ref", p.MerchantRefNum),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

func (s *Service) Verify(ctx context.Context, merchantRefNum string) (*domain.Payment, error) {
	p, err := s.payments.FindByMerchantRef(ctx, merchantRefNum)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: payment %s", domain.ErrNotFound, merchantRefNum)
	}
	return p, nil
}

func (s *Service) mirrorToTrip(ctx context.Context, p *domain.Payment, paid bool) {
	trip, err := s.trips.FindByID(ctx, p.TripID)
	if err != nil || trip == nil {
		s.log.Error("Failed to load trip for payment mirror",
			zap.String("trip_id", p.TripID),
			zap.Error(err),
		)
		return
	}

	if paid {
		trip.PaymentStatus = domain.PaymentStateCompleted
	} else {
		trip.PaymentStatus = domain.PaymentStateFailed
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		s.log.Error("Failed to mirror payment status to trip",
			zap.String("trip_id", p.TripID),
			zap.Error(err),
		)
	}
}

func (s *Service) notifyPaid(ctx context.Context, p *domain.Payment) {
	if s.email == nil {
		return
	}
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil || user == nil || !user.Settings.EmailNotifications {
		return
	}
	if err := s.email.SendPaymentReceived(ctx, user, p); err != nil {
		s.log.Warn("Failed to send payment receipt",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
	}
}

func (s *Service) publish(subject string, p *domain.Payment) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(map[string]interface{}{
		"payment_id":   p.ID,
		"trip_id":      p.TripID,
		"user_id":      p.UserID,
		"merchant_ref": p.MerchantRefNum,
		"amount":       p.Amount.Value,
		"status":       p.Status,
	})
	if err != nil {
		return
	}
	if err := s.queue.Publish(subject, data); err != nil {
		s.log.Warn("Failed to publish payment event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

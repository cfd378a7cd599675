package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type Service struct {
	users ports.UserRepository
	log   *zap.Logger
}

func NewService(users ports.UserRepository, log *zap.Logger) ports.UserService {
	return &Service{
		users: users,
		log:   log,
	}
}

// UpdateSettings replaces the user's notification toggles wholesale. The
// client always sends the full settings object, so there is no merge step.
func (s *Service) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}

	user.Settings = settings
	user.UpdatedAt = time.Now()

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User settings updated",
		zap.String("user_id", userID),
		zap.Bool("push", settings.PushNotifications),
		zap.Bool("email", settings.EmailNotifications),
		zap.Bool("ride_reminders", settings.RideReminders),
	)
	return user, nil
}

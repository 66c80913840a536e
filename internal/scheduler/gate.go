package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/models"
)

// ShouldThrottle reports whether the poll arrives within AccessWindow of the
// previous one. When it does not, lastAccessDate advances to now.
func (s *Service) ShouldThrottle(ctx context.Context, user *models.User) bool {
	now := s.now()
	if models.Within(user.LastAccessDate, now, AccessWindow) {
		return true
	}

	ok, err := s.store.AcquireLease(ctx, user.ID, models.LeaseAccess, now, AccessWindow)
	if err != nil {
		s.log.Error("access lease failed", zap.Error(err))
		return true
	}
	if ok {
		user.LastAccessDate = &now
	}
	return !ok
}

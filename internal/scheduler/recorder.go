package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
)

// Record appends an interaction for a shown task. It does not check that a
// matching task exists.
func (s *Service) Record(ctx context.Context, email string, taskType models.TaskType, domain string, affirmative *bool) error {
	email = normalizeEmail(email)
	domain = normalizeDomain(domain)
	if !validEmail(email) || domain == "" || !taskType.Valid() {
		return ErrInvalidInput
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	enc, err := s.codec.Encrypt(domain)
	if err != nil {
		return fmt.Errorf("encrypt domain: %w", err)
	}

	return s.store.AddInteraction(ctx, &models.Interaction{
		UserID:      user.ID,
		Date:        s.now(),
		Type:        taskType,
		Domain:      enc,
		Affirmative: affirmative,
	})
}

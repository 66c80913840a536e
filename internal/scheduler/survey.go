package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
)

// NextSurveyCandidate picks the oldest unanswered interaction older than
// SurveySettle and claims the survey lease for it. It returns nil when the
// lease was taken less than SurveyDebounce ago, when nothing is eligible, or
// when a concurrent poll claimed the lease first.
func (s *Service) NextSurveyCandidate(ctx context.Context, user *models.User) *Notification {
	now := s.now()
	if models.Within(user.LastSurveyDate, now, SurveyDebounce) {
		return nil
	}

	var (
		oldest *models.Interaction
		domain string
	)
	for i := range user.Interactions {
		in := &user.Interactions[i]
		if in.Answered() || now.Sub(in.Date) <= SurveySettle {
			continue
		}
		if oldest != nil && !in.Date.Before(oldest.Date) {
			continue
		}
		plain, err := s.codec.Decrypt(in.Domain)
		if err != nil {
			s.log.Warn("undecryptable interaction domain", zap.Stringer("interaction", in.ID), zap.Error(err))
			continue
		}
		oldest, domain = in, plain
	}
	if oldest == nil {
		return nil
	}

	ok, err := s.store.AcquireLease(ctx, user.ID, models.LeaseSurvey, now, SurveyDebounce)
	if err != nil {
		s.log.Error("survey lease failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	user.LastSurveyDate = &now

	token, err := s.tokens.Issue(user.ID, oldest.ID, now)
	if err != nil {
		s.log.Warn("survey token", zap.Error(err))
	}

	return &Notification{
		Type:        oldest.Type,
		Domain:      domain,
		Affirmative: oldest.Affirmative,
		Survey:      true,
		Token:       token,
	}
}

// SubmitSurvey stores feedback on one unanswered interaction. With a token
// the interaction it names is targeted; otherwise the earliest unanswered
// interaction matching type and domain is chosen.
func (s *Service) SubmitSurvey(ctx context.Context, email string, taskType models.TaskType, domain, feedback, token string) error {
	email = normalizeEmail(email)
	domain = normalizeDomain(domain)
	if !validEmail(email) || domain == "" || !taskType.Valid() || strings.TrimSpace(feedback) == "" {
		return ErrInvalidInput
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	want := uuid.Nil
	if token != "" {
		userID, interactionID, err := s.tokens.Parse(token, s.now())
		if err != nil {
			return err
		}
		if userID != user.ID {
			return ErrInvalidToken
		}
		want = interactionID
	}

	target := s.openInteraction(user, taskType, domain, want)
	if target == nil {
		return ErrNoOpenInteraction
	}

	ok, err := s.store.SetSurvey(ctx, target.ID, feedback)
	if err != nil {
		return fmt.Errorf("set survey: %w", err)
	}
	if !ok {
		return ErrNoOpenInteraction
	}
	return nil
}

// openInteraction finds the earliest unanswered interaction for
// (taskType, domain), restricted to id when id is set.
func (s *Service) openInteraction(user *models.User, taskType models.TaskType, domain string, id uuid.UUID) *models.Interaction {
	var found *models.Interaction
	for i := range user.Interactions {
		in := &user.Interactions[i]
		if in.Answered() || in.Type != taskType {
			continue
		}
		if id != uuid.Nil && in.ID != id {
			continue
		}
		plain, err := s.codec.Decrypt(in.Domain)
		if err != nil {
			s.log.Warn("undecryptable interaction domain", zap.Stringer("interaction", in.ID), zap.Error(err))
			continue
		}
		if plain != domain {
			continue
		}
		if found == nil || in.Date.Before(found.Date) {
			found = in
		}
	}
	return found
}

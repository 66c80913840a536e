package scheduler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/codec"
	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
)

// Poll is the entry point for a client poll. A nil notification with a nil
// error means there is nothing to show. Only client input errors are
// returned; dependency failures are logged and degrade to nil.
func (s *Service) Poll(ctx context.Context, email, pageURL string) (*Notification, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidInput
	}
	host, err := hostOf(pageURL)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		n, err := s.Bootstrap(ctx, email)
		if err != nil {
			s.log.Error("bootstrap failed", zap.Error(err))
			return nil, nil
		}
		return n, nil
	}
	if err != nil {
		s.log.Error("load user failed", zap.Error(err))
		return nil, nil
	}

	if s.ShouldThrottle(ctx, user) {
		return nil, nil
	}
	if user.Initial {
		return &Notification{Initial: true}, nil
	}
	return s.Next(ctx, user, host), nil
}

type openTask struct {
	task   models.Task
	domain string
}

// Next chooses what to show a non-initial user on the page host: a survey
// request first, otherwise a random task nobody has acted on yet.
func (s *Service) Next(ctx context.Context, user *models.User, host string) *Notification {
	if n := s.NextSurveyCandidate(ctx, user); n != nil {
		return n
	}

	if host != "" {
		if domain, ok := s.directory.Supports(host); ok {
			if _, err := s.gen.EnsureTwoFactorTask(ctx, user, domain); err != nil {
				s.log.Error("2fa task creation failed", zap.Error(err))
				return nil
			}
		}
	}

	relevant := s.relevantTasks(user)
	now := s.now()
	if len(relevant) == 0 || models.Within(user.LastNotificationDate, now, NotificationCooldown) {
		return nil
	}

	pick := relevant[s.intn(len(relevant))]

	ok, err := s.store.AcquireLease(ctx, user.ID, models.LeaseNotification, now, NotificationCooldown)
	if err != nil {
		s.log.Error("notification lease failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	user.LastNotificationDate = &now

	n := &Notification{
		TaskID: pick.task.ID.String(),
		Type:   pick.task.Type,
		Domain: pick.domain,
		Breach: pick.task.Breach,
	}
	account, err := codec.DecryptOptional(s.codec, pick.task.Account)
	if err != nil {
		s.log.Warn("undecryptable task account", zap.Stringer("task", pick.task.ID), zap.Error(err))
	}
	n.Account = account
	return n
}

// relevantTasks returns tasks with no interaction of the same type and
// domain, with their domains decrypted.
func (s *Service) relevantTasks(user *models.User) []openTask {
	addressed := make(map[models.TaskType]map[string]bool)
	for _, in := range user.Interactions {
		plain, err := s.codec.Decrypt(in.Domain)
		if err != nil {
			s.log.Warn("undecryptable interaction domain", zap.Stringer("interaction", in.ID), zap.Error(err))
			continue
		}
		if addressed[in.Type] == nil {
			addressed[in.Type] = make(map[string]bool)
		}
		addressed[in.Type][plain] = true
	}

	out := make([]openTask, 0, len(user.Tasks))
	for _, t := range user.Tasks {
		plain, err := s.codec.Decrypt(t.Domain)
		if err != nil {
			s.log.Warn("undecryptable task domain", zap.Stringer("task", t.ID), zap.Error(err))
			continue
		}
		if addressed[t.Type][plain] {
			continue
		}
		out = append(out, openTask{task: t, domain: plain})
	}
	return out
}

package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
)

// Bootstrap creates the record for a first-seen email and seeds it with
// password tasks for the email's breaches.
func (s *Service) Bootstrap(ctx context.Context, email string) (*Notification, error) {
	now := s.now()
	user := &models.User{
		Email:          email,
		Initial:        true,
		LastAccessDate: &now,
	}

	err := s.store.CreateUser(ctx, user)
	if errors.Is(err, repositories.ErrConflict) {
		// a concurrent poll created it first
		return &Notification{Initial: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	n, err := s.gen.BreachTasks(ctx, user.ID, email, s.breaches.Lookup(ctx, email))
	if err != nil {
		s.log.Error("bootstrap breach tasks", zap.Error(err))
	}
	s.log.Info("user bootstrapped", zap.Stringer("user", user.ID), zap.Int("tasks", n))

	return &Notification{Initial: true}, nil
}

// AddEmails clears the initial flag and runs breach lookups for every
// supplementary address of the user, tagging tasks with that address.
func (s *Service) AddEmails(ctx context.Context, email string, emails []string) (int, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return 0, ErrInvalidInput
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, ErrUnknownUser
	}
	if err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}

	if err := s.store.ClearInitial(ctx, user.ID); err != nil {
		return 0, fmt.Errorf("clear initial: %w", err)
	}

	accounts := make([]string, 0, len(emails))
	seen := map[string]bool{email: true}
	for _, e := range emails {
		e = normalizeEmail(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		if !validEmail(e) {
			s.log.Warn("skipping malformed supplementary email", zap.Stringer("user", user.ID))
			continue
		}
		accounts = append(accounts, e)
	}

	// Each account degrades on its own: a failed insert for one address
	// does not cancel the lookups of the others.
	counts := make([]int, len(accounts))
	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, account := range accounts {
		g.Go(func() error {
			n, err := s.gen.BreachTasks(ctx, user.ID, account, s.breaches.Lookup(ctx, account))
			if err != nil {
				s.log.Error("supplementary breach tasks", zap.Stringer("user", user.ID), zap.Error(err))
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

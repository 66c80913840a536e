package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/breach"
	"github.com/rohits-web03/nudge/internal/codec"
	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
)

// Generator turns breach results and 2FA checks into stored tasks.
type Generator struct {
	store repositories.Store
	codec codec.Codec
	log   *zap.Logger
}

func NewGenerator(store repositories.Store, c codec.Codec, log *zap.Logger) *Generator {
	return &Generator{store: store, codec: c, log: log}
}

// BreachTasks stores one password task per breach, tagged with account.
// Breaches without a domain cannot be acted on and are skipped.
func (g *Generator) BreachTasks(ctx context.Context, userID uuid.UUID, account string, breaches []breach.Breach) (int, error) {
	encAccount, err := g.codec.Encrypt(account)
	if err != nil {
		return 0, fmt.Errorf("encrypt account: %w", err)
	}

	created := 0
	for _, b := range breaches {
		domain := normalizeDomain(b.Domain)
		if domain == "" {
			g.log.Debug("skipping breach without domain", zap.String("breach", b.Name))
			continue
		}

		encDomain, err := g.codec.Encrypt(domain)
		if err != nil {
			return created, fmt.Errorf("encrypt domain: %w", err)
		}

		task := &models.Task{
			UserID:  userID,
			Type:    models.TaskPasswordBreach,
			Domain:  encDomain,
			Account: encAccount,
			Breach:  b.Name,
		}
		if err := g.store.AddTask(ctx, task); err != nil {
			return created, fmt.Errorf("add breach task: %w", err)
		}
		created++
	}
	return created, nil
}

// EnsureTwoFactorTask creates a 2FA task for domain unless the user already
// has one. The check decrypts every task and is not atomic with the insert,
// so concurrent polls may both create one.
func (g *Generator) EnsureTwoFactorTask(ctx context.Context, user *models.User, domain string) (bool, error) {
	domain = normalizeDomain(domain)

	for _, t := range user.Tasks {
		if t.Type != models.TaskTwoFactorAuth {
			continue
		}
		plain, err := g.codec.Decrypt(t.Domain)
		if err != nil {
			g.log.Warn("undecryptable task domain", zap.Stringer("task", t.ID), zap.Error(err))
			continue
		}
		if plain == domain {
			return false, nil
		}
	}

	enc, err := g.codec.Encrypt(domain)
	if err != nil {
		return false, fmt.Errorf("encrypt domain: %w", err)
	}

	task := models.Task{
		UserID: user.ID,
		Type:   models.TaskTwoFactorAuth,
		Domain: enc,
	}
	if err := g.store.AddTask(ctx, &task); err != nil {
		return false, fmt.Errorf("add 2fa task: %w", err)
	}
	user.Tasks = append(user.Tasks, task)
	return true, nil
}

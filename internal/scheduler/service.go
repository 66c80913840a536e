// Package scheduler decides, on each client poll, whether to nudge the user
// with a remedial security task, ask for feedback on an earlier one, or stay
// silent.
//
// All cooldowns are per-user soft leases stored on the user record and taken
// through the store's conditional update, so concurrent polls from several
// tabs cannot both win the same window.
package scheduler

import (
	"math/rand/v2"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/breach"
	"github.com/rohits-web03/nudge/internal/codec"
	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/repositories"
	"github.com/rohits-web03/nudge/internal/twofa"
)

const (
	AccessWindow         = 5 * time.Minute
	SurveyDebounce       = time.Minute
	SurveySettle         = 10 * time.Minute
	NotificationCooldown = time.Hour

	lookupConcurrency = 4
)

// Notification is what a poll returns to the client.
type Notification struct {
	Initial     bool            `json:"initial,omitempty"`
	TaskID      string          `json:"id,omitempty"`
	Type        models.TaskType `json:"type,omitempty"`
	Domain      string          `json:"domain,omitempty"`
	Account     string          `json:"account,omitempty"`
	Breach      string          `json:"breach,omitempty"`
	Affirmative *bool           `json:"affirmative,omitempty"`
	Survey      bool            `json:"survey,omitempty"`
	Token       string          `json:"token,omitempty"`
	Remediation string          `json:"remediation,omitempty"`
}

// Service wires the gates, the generator and the recorder together.
type Service struct {
	store     repositories.Store
	codec     codec.Codec
	breaches  breach.Lookup
	directory *twofa.Directory
	tokens    *SurveyTokens
	gen       *Generator
	log       *zap.Logger

	now  func() time.Time
	intn func(n int) int
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand replaces the uniform task picker.
func WithRand(intn func(n int) int) Option {
	return func(s *Service) { s.intn = intn }
}

func New(
	store repositories.Store,
	c codec.Codec,
	breaches breach.Lookup,
	directory *twofa.Directory,
	tokens *SurveyTokens,
	log *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		store:     store,
		codec:     c,
		breaches:  breaches,
		directory: directory,
		tokens:    tokens,
		gen:       NewGenerator(store, c, log),
		log:       log,
		now:       time.Now,
		intn:      rand.IntN,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail accepts a bare address only, without display name or brackets.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func normalizeDomain(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// hostOf extracts the hostname of the polled page. An empty url yields an
// empty host.
func hostOf(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidInput
	}
	host := normalizeDomain(u.Hostname())
	if host == "" {
		return "", ErrInvalidInput
	}
	return host, nil
}

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/nudge/internal/models"
)

func newUser(t *testing.T, s *MemoryStore, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Initial: true}
	require.NoError(t, s.CreateUser(context.Background(), u))
	require.NotEqual(t, uuid.Nil, u.ID)
	return u
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetUserByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	u := newUser(t, s, "a@x.com")

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.Initial)

	err = s.CreateUser(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "a@x.com")

	require.NoError(t, s.AddTask(ctx, &models.Task{UserID: u.ID, Type: models.TaskTwoFactorAuth, Domain: "d"}))

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	got.Tasks[0].Domain = "changed"
	got.Initial = false

	again, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "d", again.Tasks[0].Domain)
	assert.True(t, again.Initial)
}

func TestMemoryStore_AcquireLease(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "a@x.com")
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	ok, err := s.AcquireLease(ctx, u.ID, models.LeaseNotification, now, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireLease(ctx, u.ID, models.LeaseNotification, now.Add(59*time.Minute), time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.AcquireLease(ctx, u.ID, models.LeaseNotification, now.Add(time.Hour), time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got.LastNotificationDate)
	assert.Equal(t, now.Add(time.Hour), *got.LastNotificationDate)
	assert.Nil(t, got.LastSurveyDate)

	_, err = s.AcquireLease(ctx, u.ID, models.LeaseField("bogus"), now, time.Hour)
	assert.Error(t, err)
}

func TestMemoryStore_SetSurveyOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "a@x.com")

	in := &models.Interaction{UserID: u.ID, Date: time.Now(), Type: models.TaskPasswordBreach, Domain: "d"}
	require.NoError(t, s.AddInteraction(ctx, in))

	ok, err := s.SetSurvey(ctx, in.ID, "done")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SetSurvey(ctx, in.ID, "again")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.SetSurvey(ctx, uuid.New(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got.Interactions[0].Survey)
	assert.Equal(t, "done", *got.Interactions[0].Survey)
}

func TestMemoryStore_InteractionsOrderedByDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "a@x.com")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.AddInteraction(ctx, &models.Interaction{UserID: u.ID, Date: base.Add(time.Hour), Domain: "late"}))
	require.NoError(t, s.AddInteraction(ctx, &models.Interaction{UserID: u.ID, Date: base, Domain: "early"}))

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, got.Interactions, 2)
	assert.Equal(t, "early", got.Interactions[0].Domain)
}

func TestMemoryStore_ClearInitial(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	u := newUser(t, s, "a@x.com")

	require.NoError(t, s.ClearInitial(ctx, u.ID))
	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, got.Initial)

	assert.ErrorIs(t, s.ClearInitial(ctx, uuid.New()), ErrNotFound)
	assert.Error(t, s.AddTask(ctx, &models.Task{UserID: uuid.New()}))
}

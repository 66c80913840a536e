package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/breach"
	"github.com/rohits-web03/nudge/internal/codec"
	"github.com/rohits-web03/nudge/internal/repositories"
	"github.com/rohits-web03/nudge/internal/scheduler"
	"github.com/rohits-web03/nudge/internal/twofa"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixedRemediation string

func (f fixedRemediation) Remediation(context.Context, string, string) string { return string(f) }

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T) (*Handler, *clock) {
	t.Helper()

	c, err := codec.NewAESCodec([]byte("handler-test-key"))
	require.NoError(t, err)

	clk := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	breaches := breach.LookupFunc(func(_ context.Context, email string) []breach.Breach {
		if email == "work@x.com" {
			return []breach.Breach{{Name: "Bank", Domain: "bank.com"}}
		}
		return nil
	})

	svc := scheduler.New(
		repositories.NewMemoryStore(),
		c,
		breaches,
		twofa.Default(),
		scheduler.NewSurveyTokens([]byte("tok")),
		zap.NewNop(),
		scheduler.WithClock(clk.Now),
		scheduler.WithRand(func(int) int { return 0 }),
	)
	return New(svc, fixedRemediation("rotate it"), zap.NewNop()), clk
}

func post(t *testing.T, h http.HandlerFunc, body any) (*httptest.ResponseRecorder, response) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h(rr, req)

	var out response
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestPopup_Flow(t *testing.T) {
	h, clk := newTestHandler(t)

	rr, out := post(t, h.Popup, popupInput{Email: "a@x.com", URL: "https://bank.com/login"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"initial":true}`, string(out.Data))

	rr, _ = post(t, h.Popup, popupInput{Email: "a@x.com", URL: "https://bank.com/login"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr, out = post(t, h.AddEmails, emailInput{Email: "a@x.com", Emails: []string{"work@x.com"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"tasks":1}`, string(out.Data))

	clk.Advance(scheduler.AccessWindow)
	rr, out = post(t, h.Popup, popupInput{Email: "a@x.com", URL: "https://bank.com/login"})
	require.Equal(t, http.StatusOK, rr.Code)

	var n scheduler.Notification
	require.NoError(t, json.Unmarshal(out.Data, &n))
	assert.Equal(t, "bank.com", n.Domain)
	assert.Equal(t, "work@x.com", n.Account)
	assert.Equal(t, "Bank", n.Breach)
	assert.Equal(t, "rotate it", n.Remediation)
	assert.False(t, n.Survey)

	yes := true
	rr, _ = post(t, h.RecordInteraction, interactionInput{
		Email: "a@x.com", TaskType: "password", Domain: "bank.com", Affirmative: &yes,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	clk.Advance(scheduler.SurveySettle + time.Second)
	rr, out = post(t, h.Popup, popupInput{Email: "a@x.com", URL: "https://bank.com/login"})
	require.Equal(t, http.StatusOK, rr.Code)
	var survey scheduler.Notification
	require.NoError(t, json.Unmarshal(out.Data, &survey))
	assert.True(t, survey.Survey)
	assert.Empty(t, survey.Remediation)
	assert.NotEmpty(t, survey.Token)

	rr, _ = post(t, h.SubmitSurvey, surveyInput{
		Email: "a@x.com", TaskType: "password", Domain: "bank.com", Survey: "easy", Token: survey.Token,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, out = post(t, h.SubmitSurvey, surveyInput{
		Email: "a@x.com", TaskType: "password", Domain: "bank.com", Survey: "again",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, out.Success)
}

func TestPopup_BadInput(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, out := post(t, h.Popup, popupInput{URL: "https://bank.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, out.Success)

	rr, _ = post(t, h.Popup, popupInput{Email: "a@x.com", URL: "http://%zz"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/popup", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	h.Popup(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	for name, fn := range map[string]http.HandlerFunc{
		"popup":       h.Popup,
		"interaction": h.RecordInteraction,
		"survey":      h.SubmitSurvey,
		"email":       h.AddEmails,
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			fn(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestRecordInteraction_UnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, out := post(t, h.RecordInteraction, interactionInput{
		Email: "nobody@x.com", TaskType: "2fa", Domain: "github.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, out.Success)
}

func TestRecordInteraction_InvalidType(t *testing.T) {
	h, _ := newTestHandler(t)
	post(t, h.Popup, popupInput{Email: "a@x.com"})

	rr, _ := post(t, h.RecordInteraction, interactionInput{
		Email: "a@x.com", TaskType: "sms", Domain: "github.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitSurvey_NoInteraction(t *testing.T) {
	h, _ := newTestHandler(t)
	post(t, h.Popup, popupInput{Email: "a@x.com"})

	rr, out := post(t, h.SubmitSurvey, surveyInput{
		Email: "a@x.com", TaskType: "2fa", Domain: "github.com", Survey: "hard",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, out.Success)
}

func TestAddEmails_UnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, _ := post(t, h.AddEmails, emailInput{Email: "nobody@x.com", Emails: []string{"work@x.com"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTextGenClient_Remediation(t *testing.T) {
	var auth string
	var req chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  1. Open settings.  "}}]}`))
	}))
	defer srv.Close()

	c := NewTextGenClient(srv.URL, "", "sk-test", zap.NewNop())
	got := c.Remediation(context.Background(), "2fa", "github.com")

	assert.Equal(t, "1. Open settings.", got)
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, DefaultTextGenModel, req.Model)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "github.com")
	assert.Contains(t, req.Messages[0].Content, "two-factor")
}

func TestTextGenClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"bad json", http.StatusOK, `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewTextGenClient(srv.URL, "m", "k", zap.NewNop())
			assert.Empty(t, c.Remediation(context.Background(), "password", "bank.com"))
		})
	}
}

func TestPrompt(t *testing.T) {
	assert.Contains(t, prompt("password", "bank.com"), "password")
	assert.Contains(t, prompt("2fa", "bank.com"), "two-factor")
	assert.Empty(t, NoRemediation{}.Remediation(context.Background(), "2fa", "x"))
}

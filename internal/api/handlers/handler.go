package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/api/services"
	"github.com/rohits-web03/nudge/internal/scheduler"
	"github.com/rohits-web03/nudge/internal/utils"
)

// Handler serves the client-facing endpoints.
type Handler struct {
	svc        *scheduler.Service
	remediator services.Remediator
	log        *zap.Logger
}

func New(svc *scheduler.Service, remediator services.Remediator, log *zap.Logger) *Handler {
	if remediator == nil {
		remediator = services.NoRemediation{}
	}
	return &Handler{svc: svc, remediator: remediator, log: log}
}

// decodePost enforces POST and decodes the JSON body into v. It writes the
// error response itself and reports whether the caller should continue.
func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, message string) {
	utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
		Success: false,
		Message: message,
	})
}

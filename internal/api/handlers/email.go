package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/utils"
)

// POST /email
// AddEmails godoc
// @Summary Submit supplementary email addresses
// @Description Clears the initial state and creates breach tasks for every additional address.
// @Tags Email
// @Accept json
// @Produce json
// @Param body body emailInput true "Emails"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /email [post]
func (h *Handler) AddEmails(w http.ResponseWriter, r *http.Request) {
	var input emailInput
	if !decodePost(w, r, &input) {
		return
	}

	added, err := h.svc.AddEmails(r.Context(), input.Email, input.Emails)
	if err != nil {
		h.log.Warn("add emails", zap.Error(err))
		badRequest(w, "Could not add emails")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Emails added",
		Data: map[string]any{
			"tasks": added,
		},
	})
}

type emailInput struct {
	Email  string   `json:"email"`
	Emails []string `json:"emails"`
}

package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/scheduler"
	"github.com/rohits-web03/nudge/internal/utils"
)

// POST /popup
// Popup godoc
// @Summary Poll for a security nudge
// @Description Returns a task to act on, a survey request for an earlier task, the initial marker for new users, or 204 when there is nothing to show.
// @Tags Popup
// @Accept json
// @Produce json
// @Param body body popupInput true "Poll"
// @Success 200 {object} utils.Payload "Notification"
// @Success 204 "Nothing to show"
// @Failure 400 {object} utils.Payload "Missing email or malformed url"
// @Router /popup [post]
func (h *Handler) Popup(w http.ResponseWriter, r *http.Request) {
	var input popupInput
	if !decodePost(w, r, &input) {
		return
	}

	n, err := h.svc.Poll(r.Context(), input.Email, input.URL)
	if errors.Is(err, scheduler.ErrInvalidInput) {
		badRequest(w, "Invalid input")
		return
	}
	if err != nil {
		h.log.Error("poll failed", zap.Error(err))
	}
	if n == nil {
		utils.NoContent(w)
		return
	}

	if !n.Initial && !n.Survey {
		n.Remediation = h.remediator.Remediation(r.Context(), string(n.Type), n.Domain)
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Notification",
		Data:    n,
	})
}

type popupInput struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}

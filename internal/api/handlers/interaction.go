package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/utils"
)

// POST /interaction
// RecordInteraction godoc
// @Summary Record that a shown task was acted on
// @Tags Interaction
// @Accept json
// @Produce json
// @Param body body interactionInput true "Interaction"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /interaction [post]
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var input interactionInput
	if !decodePost(w, r, &input) {
		return
	}

	err := h.svc.Record(r.Context(), input.Email, models.TaskType(input.TaskType), input.Domain, input.Affirmative)
	if err != nil {
		h.log.Warn("record interaction", zap.Error(err))
		badRequest(w, "Could not record interaction")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Interaction recorded",
	})
}

type interactionInput struct {
	Email       string `json:"email"`
	TaskType    string `json:"taskType"`
	Domain      string `json:"domain"`
	Affirmative *bool  `json:"affirmative"`
}

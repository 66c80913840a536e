package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rohits-web03/nudge/internal/models"
	"github.com/rohits-web03/nudge/internal/utils"
)

// POST /survey
// SubmitSurvey godoc
// @Summary Submit feedback on an earlier interaction
// @Description Fills the survey of the interaction named by token, or of the earliest unanswered interaction matching taskType and domain.
// @Tags Survey
// @Accept json
// @Produce json
// @Param body body surveyInput true "Survey"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload "No matching open interaction"
// @Router /survey [post]
func (h *Handler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var input surveyInput
	if !decodePost(w, r, &input) {
		return
	}

	err := h.svc.SubmitSurvey(r.Context(), input.Email, models.TaskType(input.TaskType), input.Domain, input.Survey, input.Token)
	if err != nil {
		h.log.Warn("submit survey", zap.Error(err))
		badRequest(w, "Could not submit survey")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Survey submitted",
	})
}

type surveyInput struct {
	Email    string `json:"email"`
	TaskType string `json:"taskType"`
	Domain   string `json:"domain"`
	Survey   string `json:"survey"`
	Token    string `json:"token,omitempty"`
}

package handlers

import (
	"net/http"

	request "grota_financiamento/internal/adapter/http/dto/request"
	response "grota_financiamento/internal/adapter/http/dto/response"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TimelineHandler serves the proposal audit trail.
type TimelineHandler struct {
	usecase usecase.ITimelineUseCase
}

func NewTimelineHandler(uc usecase.ITimelineUseCase) *TimelineHandler {
	return &TimelineHandler{usecase: uc}
}

// GetTimeline handles GET /proposals/{id}/timeline, oldest event first.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	events, err := h.usecase.GetTimeline(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposalEvents(events))
}

func (h *TimelineHandler) AppendEvent(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req request.AppendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	ev, err := h.usecase.AppendEvent(c.Request.Context(), id, req.EventType(), req.Fields())
	if err != nil {
		logger.Get().WithFields(logrus.Fields{"proposal_id": id, "type": req.EventType()}).WithError(err).Warn("[timeline][handler] append failed")
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromProposalEvent(ev))
}

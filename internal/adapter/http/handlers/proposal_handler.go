package handlers

import (
	"net/http"
	"strconv"
	"strings"

	request "grota_financiamento/internal/adapter/http/dto/request"
	response "grota_financiamento/internal/adapter/http/dto/response"
	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase"
	"grota_financiamento/internal/usecase/interfaces"
	"grota_financiamento/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ActorHeader identifies the console/portal user issuing a request when the
// payload has no actor field.
const ActorHeader = "X-Actor"

// ProposalHandler handles HTTP requests for financing proposals.
type ProposalHandler struct {
	usecase usecase.IProposalUseCase
}

func NewProposalHandler(uc usecase.IProposalUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

// CreateProposal handles POST /proposals.
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var req request.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().WithError(err).Info("[proposal][handler] create invalid payload")
		writeError(c, bindError(err))
		return
	}

	actor := strings.TrimSpace(c.GetHeader(ActorHeader))
	if actor == "" && req.DealerID != nil {
		actor = "dealer:" + strings.TrimSpace(*req.DealerID)
	}

	created, err := h.usecase.CreateProposal(c.Request.Context(), req.ToInput(), actor)
	if err != nil {
		logger.Get().WithError(err).Warn("[proposal][handler] create failed")
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromProposal(created))
}

// ListProposals handles GET /proposals?status=&dealerId=.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	filter := interfaces.ProposalFilter{
		Status:   entities.ProposalStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		DealerID: strings.TrimSpace(c.Query("dealerId")),
	}

	list, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposals(list))
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(p))
}

// UpdateStatus handles PATCH /proposals/{id}/status. Sending the current status
// again returns the proposal unchanged.
func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.UpdateStatus(c.Request.Context(), id, req.NextStatus(), req.Actor, req.Notes)
	if err != nil {
		logger.Get().WithFields(logrus.Fields{"proposal_id": id, "status": req.NextStatus()}).WithError(err).Warn("[proposal][handler] status update failed")
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(updated))
}

func (h *ProposalHandler) UpdateNote(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req request.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.UpdateNote(c.Request.Context(), id, req.Notes, req.Actor)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(updated))
}

func (h *ProposalHandler) AssignDealer(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req request.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	updated, err := h.usecase.AssignDealer(c.Request.Context(), id, req.Dealer(), req.Seller(), req.Actor)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromProposal(updated))
}

// DeleteProposal handles DELETE /proposals/{id}; 204 on success.
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	if err := h.usecase.DeleteProposal(c.Request.Context(), id); err != nil {
		writeError(c, mapProposalError(err))
		return
	}
	logger.Get().WithField("proposal_id", id).Info("[proposal][handler] deleted")

	c.Status(http.StatusNoContent)
}

// ApplySnapshot handles PUT /proposals/{id}/snapshot, the HTTP side of the
// realtime bridge. Stale snapshots are accepted and reported as not applied.
func (h *ProposalHandler) ApplySnapshot(c *gin.Context) {
	id, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req request.ProposalSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	if req.Proposal.ID != id {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Proposal id does not match path", http.StatusBadRequest))
		return
	}

	applied, err := h.usecase.ApplyRemoteSnapshot(c.Request.Context(), req.ToEntity(), req.Source)
	if err != nil {
		writeError(c, mapProposalError(err))
		return
	}

	c.JSON(http.StatusOK, response.SnapshotResponse{Applied: applied})
}

func proposalIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_PROPOSAL_ID", "Invalid proposal id", http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

func mapProposalError(err error) *pkg.AppError {
	return mapDomainError(err, "PROPOSAL_NOT_FOUND", "Proposal not found")
}

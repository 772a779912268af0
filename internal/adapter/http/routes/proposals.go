package routes

import (
	"grota_financiamento/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathProposals = "/proposals"

func addProposalRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler, timelineHandler *handlers.TimelineHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("", proposalHandler.ListProposals)
		proposals.GET("/:id", proposalHandler.GetProposal)
		proposals.PATCH("/:id/status", proposalHandler.UpdateStatus)
		proposals.PATCH("/:id/notes", proposalHandler.UpdateNote)
		proposals.PATCH("/:id/assignment", proposalHandler.AssignDealer)
		proposals.DELETE("/:id", proposalHandler.DeleteProposal)
		// realtime bridge for instances without Pub/Sub
		proposals.PUT("/:id/snapshot", proposalHandler.ApplySnapshot)

		proposals.GET("/:id/timeline", timelineHandler.GetTimeline)
		proposals.POST("/:id/events", timelineHandler.AppendEvent)
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/service"
)

type VoteHandler struct {
	svc *service.LifecycleService
}

func NewVoteHandler(svc *service.LifecycleService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Cast handles POST /api/requests/:requestId/votes
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor.Role != model.RoleStudent {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only students can vote on bus requests")
	}

	requestID, errMsg := middleware.ValidateUUID(c.Params("requestId"), "requestId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	outcome, err := h.svc.CastVote(c.Context(), requestID, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Request not found")
		case errors.Is(err, service.ErrAlreadyVoted):
			Metrics.VotesTotal.WithLabelValues("duplicate").Inc()
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_VOTED", "You have already voted on this request")
		case errors.Is(err, service.ErrRequestClosed):
			Metrics.VotesTotal.WithLabelValues("closed").Inc()
			return middleware.ErrorResponse(c, fiber.StatusConflict, "REQUEST_CLOSED", "This request is no longer open for voting")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
	}

	Metrics.VotesTotal.WithLabelValues("accepted").Inc()
	return c.JSON(outcome)
}

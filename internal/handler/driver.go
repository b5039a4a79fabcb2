package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/service"
)

type DriverHandler struct {
	svc *service.SolicitService
}

func NewDriverHandler(svc *service.SolicitService) *DriverHandler {
	return &DriverHandler{svc: svc}
}

// Respond handles POST /api/requests/:requestId/respond
func (h *DriverHandler) Respond(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor.Role != model.RoleDriver {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only drivers can respond to solicitations")
	}

	requestID, errMsg := middleware.ValidateUUID(c.Params("requestId"), "requestId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var body model.RespondBody
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if body.Decision != model.DecisionAccept && body.Decision != model.DecisionDecline {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "decision must be 'accept' or 'decline'")
	}

	outcome, err := h.svc.Respond(c.Context(), requestID, actor.ID, body.Decision)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Request not found")
		case errors.Is(err, service.ErrNotSolicited):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "NOT_SOLICITED", "You were not solicited for this request")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record response")
	}

	Metrics.ResponsesTotal.WithLabelValues(body.Decision).Inc()
	return c.JSON(outcome)
}

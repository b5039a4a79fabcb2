package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/service"
)

type CoordinatorHandler struct {
	svc *service.DecisionService
}

func NewCoordinatorHandler(svc *service.DecisionService) *CoordinatorHandler {
	return &CoordinatorHandler{svc: svc}
}

// Approve handles POST /api/requests/:requestId/approve
func (h *CoordinatorHandler) Approve(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	requestID, errMsg := middleware.ValidateUUID(c.Params("requestId"), "requestId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var body service.ApproveBody
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if body.BusID == "" || body.DriverID == "" || body.DepartureTime.IsZero() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "busId, driverId, and departureTime are required")
	}

	outcome, err := h.svc.Approve(c.Context(), actor, requestID, body)
	if err != nil {
		return h.decisionError(c, err, "Failed to approve request")
	}

	return c.JSON(outcome)
}

// Reject handles POST /api/requests/:requestId/reject
func (h *CoordinatorHandler) Reject(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	requestID, errMsg := middleware.ValidateUUID(c.Params("requestId"), "requestId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var body service.RejectBody
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	reason, errMsg := middleware.ValidateReason(body.Reason)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	outcome, err := h.svc.Reject(c.Context(), actor, requestID, reason)
	if err != nil {
		return h.decisionError(c, err, "Failed to reject request")
	}

	return c.JSON(outcome)
}

func (h *CoordinatorHandler) decisionError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, service.ErrStateChanged):
		return middleware.ErrorResponse(c, fiber.StatusConflict, "STATE_CHANGED", "Request state changed, please refresh and retry")
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}

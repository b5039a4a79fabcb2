package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/middleware"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/service"
)

type RequestHandler struct {
	svc *service.LifecycleService
}

func NewRequestHandler(svc *service.LifecycleService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Create handles POST /api/requests
func (h *RequestHandler) Create(c fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if actor.Role != model.RoleStudent {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Only students can create bus requests")
	}

	var body model.CreateRequestBody
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateTitle(body.Title)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	body.Title = title

	desc, errMsg := middleware.ValidateDescription(body.Description)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	body.Description = desc

	region, errMsg := middleware.ValidateRegion(body.Region)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	body.Region = region

	duration, errMsg := middleware.ValidateDuration(body.DurationMinutes)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	body.DurationMinutes = duration

	req, err := h.svc.CreateRequest(c.Context(), actor, body)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
	}

	return c.Status(fiber.StatusCreated).JSON(model.CreateRequestResponse{
		RequestID: req.ID,
		Deadline:  req.Deadline,
	})
}

// Get handles GET /api/requests/:requestId
func (h *RequestHandler) Get(c fiber.Ctx) error {
	requestID, errMsg := middleware.ValidateUUID(c.Params("requestId"), "requestId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	view, fromCache, err := h.svc.GetRequestView(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Request not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load request")
	}

	if fromCache {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	return c.JSON(view)
}

// List handles GET /api/requests
func (h *RequestHandler) List(c fiber.Ctx) error {
	views, err := h.svc.ListOpenViews(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list requests")
	}
	return c.JSON(fiber.Map{"requests": views})
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

const actorKey = "actor"

// Identity headers set by the authenticating front layer. The workflow
// trusts them without re-verifying credentials; each request gets its
// own Actor rather than any shared current-user cache.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// NewActorContext extracts the calling actor from the trusted identity
// headers into request-scoped locals. Requests without an identity are
// rejected before any handler runs.
func NewActorContext() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderUserID))
		role := strings.TrimSpace(c.Get(HeaderUserRole))

		if id == "" || len(id) > MaxUserIDLen {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Missing or invalid identity")
		}
		switch role {
		case model.RoleStudent, model.RoleDriver, model.RoleCoordinator:
		default:
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Unknown role")
		}

		c.Locals(actorKey, model.Actor{ID: id, Role: role})
		return c.Next()
	}
}

// ActorFromCtx returns the actor stored by NewActorContext.
func ActorFromCtx(c fiber.Ctx) model.Actor {
	if actor, ok := c.Locals(actorKey).(model.Actor); ok {
		return actor
	}
	return model.Actor{}
}

// RequireRole short-circuits requests whose actor lacks the given role.
func RequireRole(role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if ActorFromCtx(c).Role != role {
			return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "This operation requires the "+role+" role")
		}
		return c.Next()
	}
}

package middleware

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema expectations.
const (
	MaxTitleLen       = 120
	MaxDescriptionLen = 2000
	MaxRegionLen      = 64
	MaxReasonLen      = 500
	MaxUserIDLen      = 64
	MinDuration       = 15    // minutes
	MaxDuration       = 10080 // one week
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateUUID checks that an id path parameter is a well-formed UUID.
func ValidateUUID(id, field string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", field + " is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", field + " must be a valid UUID"
	}
	return id, ""
}

// ValidateTitle checks the request title.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 120 characters"
	}
	return title, ""
}

// ValidateDescription trims and bounds the free-text description.
func ValidateDescription(desc string) (string, string) {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		return "", "description must be at most 2000 characters"
	}
	return desc, ""
}

// ValidateRegion checks the origin region name. Regions are proper
// names ("Hubli", "Dharwad"): letters, spaces, and hyphens only.
// Comparison elsewhere is case-sensitive, so no case folding here.
func ValidateRegion(region string) (string, string) {
	region = strings.TrimSpace(region)
	if region == "" {
		return "", "region is required"
	}
	if len(region) > MaxRegionLen {
		return "", "region must be at most 64 characters"
	}
	for _, r := range region {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return "", "region contains invalid characters"
		}
	}
	return region, ""
}

// ValidateDuration bounds the requested voting window in minutes.
// Zero means "use the configured default".
func ValidateDuration(minutes int) (int, string) {
	if minutes == 0 {
		return 0, ""
	}
	if minutes < MinDuration || minutes > MaxDuration {
		return 0, "durationMinutes must be between 15 and 10080"
	}
	return minutes, ""
}

// ValidateReason trims and bounds a rejection reason. Empty is allowed;
// the service substitutes a default.
func ValidateReason(reason string) (string, string) {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLen {
		return "", "reason must be at most 500 characters"
	}
	return reason, ""
}

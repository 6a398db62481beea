package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"app/aiplanner"
	"app/catalog"
	"app/models"
)

// Planner is the Gemini-backed draft writer, wired at startup. It stays nil
// when no API key is configured.
var Planner *aiplanner.Planner

// HandleGenerateAIDraft asks the AI planner for a free-text schedule draft
// constrained to real catalog activities. Generation failures degrade to
// the placeholder draft instead of an error response.
// POST /api/v1/schedule/ai-draft
func HandleGenerateAIDraft(c *fiber.Ctx) error {
	var body models.AIDraftRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if Planner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "AI drafting is not configured",
		})
	}
	if len(body.Trip.Themes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "At least one theme is required",
		})
	}

	// Gather the candidate pool the draft is allowed to reference.
	seen := make(map[string]bool)
	var pool []models.ActivityCandidate
	for _, theme := range body.Trip.Themes {
		candidates, err := Catalog.Query(c.Context(), catalog.QueryFilter{
			Theme:  strings.TrimSpace(theme),
			Region: body.Trip.Region,
		})
		if err != nil {
			log.Printf("catalog query for ai draft theme %q failed: %v", theme, err)
			continue
		}
		for _, cand := range candidates {
			if !seen[cand.ActivityID] {
				seen[cand.ActivityID] = true
				pool = append(pool, cand)
			}
		}
	}

	draft, err := Planner.Draft(c.Context(), &body.Trip, pool)
	if err != nil {
		log.Printf("ai draft generation failed, using fallback: %v", err)
		draft = aiplanner.FallbackDraft()
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   draft,
	})
}

package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/catalog"
	"app/models"
	"app/scheduler"
	"app/store"
)

// Shared collaborators, wired at startup from main.
var (
	Engine    *scheduler.Engine
	Catalog   catalog.Source
	Schedules *store.ScheduleStore
)

// statusForError maps engine error kinds onto HTTP status codes.
func statusForError(err error) int {
	switch scheduler.KindOf(err) {
	case scheduler.KindInvalidRequest:
		return fiber.StatusBadRequest
	case scheduler.KindNoActivitiesFound:
		return fiber.StatusNotFound
	case scheduler.KindCatalogUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleGenerateSchedule runs the scheduling engine for a trip request.
// POST /api/v1/schedule/generate
func HandleGenerateSchedule(c *fiber.Ctx) error {
	var req models.TripRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}

	result, err := Engine.Generate(c.Context(), &req)
	if err != nil {
		log.Printf("schedule generation failed: %v", err)
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"status":  "error",
			"kind":    string(scheduler.KindOf(err)),
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   result,
	})
}

// HandleResolveSchedule re-validates and repairs a schedule supplied by the
// caller, then recomputes its totals and summary.
// POST /api/v1/schedule/resolve
func HandleResolveSchedule(c *fiber.Ctx) error {
	var body struct {
		Trip     models.TripRequest   `json:"trip"`
		Schedule []models.ScheduleDay `json:"schedule"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if len(body.Schedule) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Schedule must not be empty",
		})
	}

	result, err := Engine.Resolve(c.Context(), &body.Trip, body.Schedule)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"status":  "error",
			"kind":    string(scheduler.KindOf(err)),
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   result,
	})
}

// HandleGetSchedule fetches a previously persisted schedule.
// GET /api/v1/schedule/:scheduleId
func HandleGetSchedule(c *fiber.Ctx) error {
	if Schedules == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "Schedule persistence is not configured",
		})
	}

	stored, err := Schedules.Get(c.Context(), c.Params("scheduleId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Schedule not found",
			})
		}
		log.Printf("schedule fetch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch schedule",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   stored,
	})
}

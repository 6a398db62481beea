package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"app/catalog"
	"app/utils"
)

// HandleSearchActivities searches the activity catalog.
// GET /api/v1/activities?theme=&region=&maxPrice=&page=&pageSize=
func HandleSearchActivities(c *fiber.Ctx) error {
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)

	candidates, err := Catalog.Query(c.Context(), catalog.QueryFilter{
		Theme:    c.Query("theme"),
		Region:   c.Query("region"),
		MaxPrice: maxPrice,
	})
	if err != nil {
		log.Printf("activity search failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "Activity catalog is unavailable",
		})
	}

	pagination := utils.CreatePagination(len(candidates), page, pageSize)
	start := (pagination.CurrentPage - 1) * pagination.PageSize
	if start > len(candidates) {
		start = len(candidates)
	}
	end := start + pagination.PageSize
	if end > len(candidates) {
		end = len(candidates)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       candidates[start:end],
		"pagination": pagination,
	})
}

// HandleGetActivity resolves one activity by id.
// GET /api/v1/activities/:activityId
func HandleGetActivity(c *fiber.Ctx) error {
	cand, err := Catalog.Lookup(c.Context(), c.Params("activityId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Activity not found",
			})
		}
		log.Printf("activity lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to look up activity",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   cand,
	})
}

package progressValidator

import (
	"strconv"
	"strings"

	"storyisle/middleware"
	progressService "storyisle/services/progress"

	"github.com/gofiber/fiber/v2"
)

// ListProgress parses the optional unlock/completion filters
func ListProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := progressService.ListFilters{}

		if raw := c.Query("is_unlocked"); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid is_unlocked filter!", nil)
			}
			filters.IsUnlocked = &value
		}
		if raw := c.Query("is_completed"); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid is_completed filter!", nil)
			}
			filters.IsCompleted = &value
		}

		c.Locals("progressFilters", filters)
		return c.Next()
	}
}

// IslandID validates the :islandId path parameter
func IslandID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("islandId"))
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid island ID in the URL!", nil)
		}
		c.Locals("islandID", uint(id))
		return c.Next()
	}
}

// UpsertProgress validates the create-or-update body
func UpsertProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IslandID    uint  `json:"island_id"`
			IsUnlocked  *bool `json:"is_unlocked"`
			IsCompleted *bool `json:"is_completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.IslandID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"island_id": "Island ID is required!"})
		}

		c.Locals("islandID", reqData.IslandID)
		c.Locals("isUnlocked", reqData.IsUnlocked)
		c.Locals("isCompleted", reqData.IsCompleted)
		return c.Next()
	}
}

// UpdateProgress validates the :id parameter and patch body
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid progress ID in the URL!", nil)
		}

		reqData := new(struct {
			IsUnlocked  *bool `json:"is_unlocked"`
			IsCompleted *bool `json:"is_completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("progressID", uint(id))
		c.Locals("isUnlocked", reqData.IsUnlocked)
		c.Locals("isCompleted", reqData.IsCompleted)
		return c.Next()
	}
}

package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetHistoryRange(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	startDate := c.Query("from")
	endDate := c.Query("to")
	entries, err := handler.rollup.GetRange(user.ID, startDate, endDate)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (handler *Handler) GetHistoryPage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	pageSize := 0
	if raw := c.Query("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid page size")
		}
		pageSize = parsed
	}

	page, err := handler.rollup.GetPage(user.ID, c.Query("from"), c.Query("to"), pageSize, c.Query("cursor"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(page)
}

func (handler *Handler) GetHistoryAverages(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	averages, err := handler.rollup.GetAverages(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(averages)
}

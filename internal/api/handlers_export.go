package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rastokopal/macrolog/internal/ledger"
	"github.com/rastokopal/macrolog/internal/models"
)

var exportCSVHeaders = []string{
	"date", "meal", "ingredient", "quantity",
	"calories_kcal", "protein_g", "carbs_g", "fats_g", "fiber_g",
}

func (handler *Handler) exportRange(c *fiber.Ctx) (uint, string, string, int, string) {
	user, ok := currentUser(c)
	if !ok {
		return 0, "", "", fiber.StatusUnauthorized, "unauthorized"
	}

	fromDate := c.Query("from")
	toDate := c.Query("to")
	if !ledger.ValidDate(fromDate) || !ledger.ValidDate(toDate) || fromDate > toDate {
		return 0, "", "", fiber.StatusBadRequest, "invalid date range"
	}
	return user.ID, fromDate, toDate, 0, ""
}

// ExportCSV writes one row per logged ingredient, oldest day first.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	userID, fromDate, toDate, status, message := handler.exportRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	entries, err := handler.repositories.Ledgers.ListByUserDateRangeDesc(userID, fromDate, toDate, 0, "")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch ledgers")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(exportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	for position := len(entries) - 1; position >= 0; position-- {
		entry := entries[position]
		for _, meal := range models.MealTypes() {
			for _, ingredient := range entry.Slot(meal).Ingredients {
				fiberValue := 0.0
				if ingredient.Fiber != nil {
					fiberValue = *ingredient.Fiber
				}
				if err := writer.Write([]string{
					entry.Date,
					string(meal),
					ingredient.Name,
					ingredient.Quantity,
					formatCSVFloat(ingredient.Calories),
					formatCSVFloat(ingredient.Protein),
					formatCSVFloat(ingredient.Carbs),
					formatCSVFloat(ingredient.Fats),
					formatCSVFloat(fiberValue),
				}); err != nil {
					return apiError(c, fiber.StatusInternalServerError, "failed to build export")
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename("csv"))
	return c.Send(output.Bytes())
}

// ExportJSON returns the stored days as ledger views, oldest first.
func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	userID, fromDate, toDate, status, message := handler.exportRange(c)
	if status != 0 {
		return apiError(c, status, message)
	}

	entries, err := handler.repositories.Ledgers.ListByUserDateRangeDesc(userID, fromDate, toDate, 0, "")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch ledgers")
	}

	views := make([]ledgerView, 0, len(entries))
	for position := len(entries) - 1; position >= 0; position-- {
		views = append(views, projectLedger(entries[position]))
	}

	setExportAttachmentHeaders(c, "application/json", buildExportFilename("json"))
	return c.JSON(fiber.Map{"from": fromDate, "to": toDate, "days": views})
}

func formatCSVFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func buildExportFilename(extension string) string {
	return fmt.Sprintf("macrolog-export-%s.%s", time.Now().UTC().Format("20060102-150405"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

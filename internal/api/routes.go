package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Post("/register", handler.Register)
	api.Post("/login", handler.Login)
	api.Get("/me", handler.AuthRequired, handler.Me)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)
	api.Put("/profile", handler.AuthRequired, handler.UpsertProfile)
	api.Post("/profile/weight", handler.AuthRequired, handler.RecordWeight)
	api.Get("/profile/weight", handler.AuthRequired, handler.WeightHistory)

	ledgerGroup := api.Group("/ledger", handler.AuthRequired)
	ledgerGroup.Get("/:date", handler.GetLedgerDay)
	ledgerGroup.Post("/:date/:meal/ingredients", handler.AddIngredients)
	ledgerGroup.Delete("/:date/:meal/ingredients/:id", handler.RemoveIngredient)

	history := api.Group("/history", handler.AuthRequired)
	history.Get("", handler.GetHistoryRange)
	history.Get("/page", handler.GetHistoryPage)
	history.Get("/averages", handler.GetHistoryAverages)

	api.Get("/export.csv", handler.AuthRequired, handler.ExportCSV)
	api.Get("/export.json", handler.AuthRequired, handler.ExportJSON)

	api.Post("/recognize", handler.AuthRequired, handler.RecognizeIngredients)
}

package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, recognizer Recognizer, cacheTTL time.Duration) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		db:         database,
		secretKey:  []byte(secret),
		cacheTTL:   cacheTTL,
		recognizer: recognizer,
	}
	handler.ensureDependencies()
	return handler, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

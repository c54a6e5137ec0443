package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/validator"
)

// parseBody разбирает и валидирует тело запроса
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, errors.ErrInvalidRequest)
	}
	return validator.Validate(req)
}

// categoryParam читает категорию из параметра пути
func categoryParam(c *fiber.Ctx) (domain.Category, error) {
	return parseCategory(c.Params("category"))
}

func parseCategory(s string) (domain.Category, error) {
	category, err := domain.ParseCategory(s)
	if err != nil {
		return domain.CategoryUnknown, fmt.Errorf("%v: %w", err, errors.ErrInvalidCategory)
	}
	return category, nil
}

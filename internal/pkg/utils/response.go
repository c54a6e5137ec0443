package utils

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total    int     `json:"total,omitempty"`
	Page     int     `json:"page,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Ошибки валидации DTO - 400 с перечнем полей
	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		fields := make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		invalid := errors.ErrInvalidRequest.WithDetails(fields)
		return c.Status(invalid.StatusCode).JSON(ErrorResponse{
			Error: invalid,
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

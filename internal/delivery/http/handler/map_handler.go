package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// MapHandler - координата курсора и измерения
type MapHandler struct {
	logger *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(logger *zap.Logger) *MapHandler {
	return &MapHandler{logger: logger}
}

// GetPosition godoc
// @Summary Координата курсора
// @Description Переводит точку EPSG:3857 в EPSG:4326, формат "x, y" с 4 знаками
// @Tags Map
// @Produce json
// @Param x query number true "X в EPSG:3857"
// @Param y query number true "Y в EPSG:3857"
// @Success 200 {object} utils.SuccessResponse{data=dto.PositionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/position [get]
func (h *MapHandler) GetPosition(c *fiber.Ctx) error {
	x, err := queryFloat(c, "x")
	if err != nil {
		return utils.SendError(c, err)
	}
	y, err := queryFloat(c, "y")
	if err != nil {
		return utils.SendError(c, err)
	}

	pos, err := usecase.MousePosition(x, y)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, pos, nil)
}

// MeasureLine godoc
// @Summary Длина линии
// @Description Геодезическая длина ломаной в метрах
// @Tags Map
// @Accept json
// @Produce json
// @Param request body dto.MeasureRequest true "Точки в EPSG:3857"
// @Success 200 {object} utils.SuccessResponse{data=dto.MeasureResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/measure/line [post]
func (h *MapHandler) MeasureLine(c *fiber.Ctx) error {
	var req dto.MeasureRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	res, err := usecase.MeasureLine(req.Points)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, res, nil)
}

// MeasurePolygon godoc
// @Summary Площадь полигона
// @Description Геодезическая площадь в квадратных метрах, кольцо замыкается автоматически
// @Tags Map
// @Accept json
// @Produce json
// @Param request body dto.MeasureRequest true "Вершины в EPSG:3857"
// @Success 200 {object} utils.SuccessResponse{data=dto.MeasureResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/measure/polygon [post]
func (h *MapHandler) MeasurePolygon(c *fiber.Ctx) error {
	var req dto.MeasureRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	res, err := usecase.MeasurePolygon(req.Points)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, res, nil)
}

func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fmt.Errorf("query parameter %s is required: %w", key, errors.ErrInvalidRequest)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s: %w", key, errors.ErrInvalidRequest)
	}
	return v, nil
}

package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/pkg/validator"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
	"github.com/peterstace/simplefeatures/geom"
	"go.uber.org/zap"
)

// LayerHandler - таблица маркеров и экспорт слоёв
type LayerHandler struct {
	workspace *usecase.Workspace
	logger    *zap.Logger
}

// NewLayerHandler - создание нового LayerHandler
func NewLayerHandler(workspace *usecase.Workspace, logger *zap.Logger) *LayerHandler {
	return &LayerHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// ListMarkers godoc
// @Summary Таблица маркеров
// @Description Подтверждённые маркеры с фильтром по заголовку и сортировкой
// @Tags Markers
// @Produce json
// @Param search query string false "Подстрока заголовка (без учёта регистра)"
// @Param order query string false "ascend или descend" default(ascend)
// @Success 200 {object} utils.SuccessResponse{data=dto.GridResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/markers [get]
func (h *LayerHandler) ListMarkers(c *fiber.Ctx) error {
	var query dto.GridQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fmt.Errorf("invalid query: %v: %w", err, errors.ErrInvalidRequest))
	}
	if err := validator.Validate(&query); err != nil {
		return utils.SendError(c, err)
	}

	grid, err := h.workspace.Grid(c.UserContext(), query.Search, query.Order)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, grid, &utils.Meta{
		Total: grid.Total,
	})
}

// GetFeatures godoc
// @Summary Слой категории в GeoJSON
// @Description FeatureCollection со всеми точками слоя, включая черновик
// @Tags Layers
// @Produce json
// @Param category path string true "checked, delete или text"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/layers/{category}/features.geojson [get]
func (h *LayerHandler) GetFeatures(c *fiber.Ctx) error {
	category, err := categoryParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	markers, err := h.workspace.LayerFeatures(c.UserContext(), category)
	if err != nil {
		return utils.SendError(c, err)
	}

	collection := make(geom.GeoJSONFeatureCollection, 0, len(markers))
	for _, m := range markers {
		feature, err := m.GeoJSONFeature()
		if err != nil {
			h.logger.Error("Invalid marker geometry", zap.Stringer("category", category), zap.Error(err))
			return utils.SendError(c, fmt.Errorf("%v: %w", err, errors.ErrInvalidGeometry))
		}
		collection = append(collection, feature)
	}

	body, err := json.Marshal(collection)
	if err != nil {
		h.logger.Error("Failed to encode layer", zap.Stringer("category", category), zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}

// GetStyle godoc
// @Summary Стиль слоя при разрешении
// @Description Вычисляет масштаб иконки. Без resolution берётся текущее разрешение карты
// @Tags Layers
// @Produce json
// @Param category path string true "checked, delete или text"
// @Param resolution query number false "Метров на пиксель"
// @Success 200 {object} utils.SuccessResponse{data=dto.StyleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/layers/{category}/style [get]
func (h *LayerHandler) GetStyle(c *fiber.Ctx) error {
	category, err := categoryParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var resolution float64
	if raw := c.Query("resolution"); raw != "" {
		resolution, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.SendError(c, fmt.Errorf("resolution %q: %w", raw, errors.ErrInvalidResolution))
		}
		if resolution == 0 {
			return utils.SendError(c, fmt.Errorf("resolution must be positive: %w", errors.ErrInvalidResolution))
		}
	}

	style, err := h.workspace.LayerStyle(c.UserContext(), category, resolution)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, style, nil)
}

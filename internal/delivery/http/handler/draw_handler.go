package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// DrawHandler - рисование и подтверждение маркеров
type DrawHandler struct {
	workspace *usecase.Workspace
	logger    *zap.Logger
}

// NewDrawHandler - создание нового DrawHandler
func NewDrawHandler(workspace *usecase.Workspace, logger *zap.Logger) *DrawHandler {
	return &DrawHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// StartDrawing godoc
// @Summary Выбрать инструмент рисования
// @Description Включает рисование точек категории (checked, delete, text)
// @Tags Draw
// @Accept json
// @Produce json
// @Param request body dto.StartDrawingRequest true "Категория маркера"
// @Success 200 {object} utils.SuccessResponse{data=domain.Creation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/draw/start [post]
func (h *DrawHandler) StartDrawing(c *fiber.Ctx) error {
	var req dto.StartDrawingRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		return utils.SendError(c, err)
	}

	creation, err := h.workspace.StartDrawing(c.UserContext(), category)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, creation, nil)
}

// StopDrawing godoc
// @Summary Выключить инструмент рисования
// @Tags Draw
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Creation}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/draw/stop [post]
func (h *DrawHandler) StopDrawing(c *fiber.Ctx) error {
	creation, err := h.workspace.StopDrawing(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, creation, nil)
}

// DrawEnd godoc
// @Summary Точка поставлена на карту
// @Description Создаёт черновик на слое категории и открывает окно подтверждения
// @Tags Draw
// @Accept json
// @Produce json
// @Param request body dto.DrawEndRequest true "Координата в EPSG:3857"
// @Success 200 {object} utils.SuccessResponse{data=domain.Creation}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/draw/end [post]
func (h *DrawHandler) DrawEnd(c *fiber.Ctx) error {
	var req dto.DrawEndRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	creation, err := h.workspace.DrawEnd(c.UserContext(), domain.Coordinate{X: req.X, Y: req.Y})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, creation, nil)
}

// Confirm godoc
// @Summary Подтвердить маркер
// @Description Сохраняет заголовок и описание, переносит черновик в хранилище
// @Tags Draw
// @Accept json
// @Produce json
// @Param request body dto.ConfirmMarkerRequest true "Заголовок и описание"
// @Success 200 {object} utils.SuccessResponse{data=domain.Marker}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/draw/confirm [post]
func (h *DrawHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmMarkerRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	marker, err := h.workspace.Confirm(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Marker confirmed",
		zap.Stringer("id", marker.ID),
		zap.Stringer("category", marker.Category))

	return utils.SendSuccess(c, marker, nil)
}

// Cancel godoc
// @Summary Отменить маркер
// @Description Удаляет черновик со слоя
// @Tags Draw
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Marker}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/draw/cancel [post]
func (h *DrawHandler) Cancel(c *fiber.Ctx) error {
	draft, err := h.workspace.Cancel(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, draft, nil)
}

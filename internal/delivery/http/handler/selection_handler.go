package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SelectionHandler - выбор маркеров, попап и состояние рабочей области
type SelectionHandler struct {
	workspace *usecase.Workspace
	logger    *zap.Logger
}

// NewSelectionHandler - создание нового SelectionHandler
func NewSelectionHandler(workspace *usecase.Workspace, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// GetWorkspace godoc
// @Summary Состояние рабочей области
// @Description Режим и состояние выбора, процесс создания, вид карты, настройки иконок
// @Tags Workspace
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.WorkspaceSnapshot}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/workspace [get]
func (h *SelectionHandler) GetWorkspace(c *fiber.Ctx) error {
	snap, err := h.workspace.Snapshot(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to get workspace snapshot", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, snap, nil)
}

// Select godoc
// @Summary Выбор маркера на карте
// @Description Пустое тело снимает выбор. Неизвестный маркер игнорируется
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.FeatureRefRequest true "Категория и id маркера"
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/select [post]
func (h *SelectionHandler) Select(c *fiber.Ctx) error {
	var req dto.FeatureRefRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	var ref *usecase.FeatureRef
	if !req.IsEmpty() {
		r, err := featureRef(req)
		if err != nil {
			return utils.SendError(c, err)
		}
		ref = &r
	}

	selection, err := h.workspace.SelectFeature(c.UserContext(), ref)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, selection, nil)
}

// ClickGridRow godoc
// @Summary Клик по строке таблицы
// @Description Показывает попап у маркера без приближения карты
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.FeatureRefRequest true "Категория и id маркера"
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/grid/rows/click [post]
func (h *SelectionHandler) ClickGridRow(c *fiber.Ctx) error {
	var req dto.FeatureRefRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	ref, err := featureRef(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	selection, err := h.workspace.ClickGridRow(c.UserContext(), ref)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, selection, nil)
}

// SetMode godoc
// @Summary Переключить режим выбора
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.ModeRequest true "grouped или ungrouped"
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/mode [post]
func (h *SelectionHandler) SetMode(c *fiber.Ctx) error {
	var req dto.ModeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	selection, err := h.workspace.ToggleMode(c.UserContext(), domain.SelectionMode(req.Mode))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, selection, nil)
}

// ClosePopup godoc
// @Summary Закрыть попап
// @Tags Selection
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Selection}
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/popup/close [post]
func (h *SelectionHandler) ClosePopup(c *fiber.Ctx) error {
	selection, err := h.workspace.ClosePopup(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, selection, nil)
}

func featureRef(req dto.FeatureRefRequest) (usecase.FeatureRef, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return usecase.FeatureRef{}, err
	}
	return usecase.FeatureRef{Category: category, ID: domain.FeatureID(req.ID)}, nil
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// IconHandler - настройки масштабирования иконок
type IconHandler struct {
	workspace *usecase.Workspace
	logger    *zap.Logger
}

// NewIconHandler - создание нового IconHandler
func NewIconHandler(workspace *usecase.Workspace, logger *zap.Logger) *IconHandler {
	return &IconHandler{
		workspace: workspace,
		logger:    logger,
	}
}

// GetSettings godoc
// @Summary Настройки иконок всех категорий
// @Tags Icons
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.IconSettingView}
// @Router /api/v1/icons/settings [get]
func (h *IconHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.workspace.IconSettings(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, settings, &utils.Meta{
		Total: len(settings),
	})
}

// UpdateSettings godoc
// @Summary Изменить масштабирование иконки категории
// @Description Чекбокс включает зависимость от зума, слайдер задаёт показатель 0.5..10 с шагом 0.5.
// @Description Можно прислать только одно из полей, второе останется прежним
// @Tags Icons
// @Accept json
// @Produce json
// @Param category path string true "checked, delete или text"
// @Param request body dto.IconScaleRequest true "Настройка"
// @Success 200 {object} utils.SuccessResponse{data=dto.IconSettingView}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/icons/{category}/settings [put]
func (h *IconHandler) UpdateSettings(c *fiber.Ctx) error {
	category, err := categoryParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.IconScaleRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	view, err := h.workspace.UpdateIconScale(c.UserContext(), category, domain.IconScalePatch{
		Enabled:  req.Enabled,
		Exponent: req.Exponent,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Icon scale updated",
		zap.Stringer("category", category),
		zap.Bool("enabled", view.Setting.Enabled),
		zap.Float64("exponent", view.Setting.Exponent))

	return utils.SendSuccess(c, view, nil)
}

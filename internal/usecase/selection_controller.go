package usecase

import (
	"fmt"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// MapSurface - часть карты, которой управляет контроллер выбора
type MapSurface interface {
	// SetOverlayPosition привязывает попап к координате (nil - отвязать)
	SetOverlayPosition(coord *domain.Coordinate)
	// ZoomToFeatures подгоняет вид карты под выбранные точки
	ZoomToFeatures(coords ...domain.Coordinate)
}

// SelectionController - конечный автомат попапа: Idle, PopupShown, ModalShown.
// Не потокобезопасен, владелец - Workspace.
type SelectionController struct {
	mode    domain.SelectionMode
	state   domain.SelectionState
	active  *domain.Marker
	anchor  *domain.Coordinate
	surface MapSurface
	logger  *zap.Logger
}

// NewSelectionController создаёт контроллер в состоянии Idle, режим grouped
func NewSelectionController(surface MapSurface, logger *zap.Logger) *SelectionController {
	return &SelectionController{
		mode:    domain.SelectionModeGrouped,
		state:   domain.SelectionIdle,
		surface: surface,
		logger:  logger,
	}
}

// MapFeatureSelected - клик по маркеру на карте; nil означает снятие выбора
func (c *SelectionController) MapFeatureSelected(marker *domain.Marker) error {
	if c.mode == domain.SelectionModeGrouped {
		if marker == nil {
			c.reset()
			return nil
		}
		c.show(*marker, domain.SelectionPopupShown)
		c.surface.ZoomToFeatures(marker.Coordinate)
		return nil
	}

	// Ungrouped: флаг видимости повторяет непустоту выбора, без попапа и панорамы
	if marker == nil {
		c.reset()
		return nil
	}
	m := *marker
	c.active = &m
	c.anchor = nil
	c.state = domain.SelectionModalShown
	c.surface.SetOverlayPosition(nil)
	return nil
}

// GridRowClicked - клик по строке таблицы, в любом режиме показывает попап
func (c *SelectionController) GridRowClicked(marker *domain.Marker) error {
	if marker == nil {
		return fmt.Errorf("grid row without marker: %w", errors.ErrInvalidRequest)
	}
	c.show(*marker, domain.SelectionPopupShown)
	return nil
}

// ModeToggled переключает режим и всегда скрывает попап
func (c *SelectionController) ModeToggled(mode domain.SelectionMode) error {
	if _, err := domain.ParseSelectionMode(string(mode)); err != nil {
		return fmt.Errorf("%v: %w", err, errors.ErrInvalidSelectionMode)
	}
	c.mode = mode
	c.reset()
	return nil
}

// PopupClosed - пользователь закрыл попап крестиком
func (c *SelectionController) PopupClosed() error {
	if c.state == domain.SelectionIdle {
		c.logger.Debug("Popup close ignored, nothing is shown")
		return fmt.Errorf("popup close in %s: %w", c.state, errors.ErrInvalidTransition)
	}
	c.reset()
	return nil
}

// Mode возвращает текущий режим выбора
func (c *SelectionController) Mode() domain.SelectionMode {
	return c.mode
}

// Snapshot возвращает копию состояния
func (c *SelectionController) Snapshot() domain.Selection {
	s := domain.Selection{
		Mode:         c.mode,
		State:        c.state,
		PopupVisible: c.state == domain.SelectionPopupShown,
		ModalVisible: c.state == domain.SelectionModalShown,
	}
	if c.active != nil {
		m := *c.active
		s.Active = &m
	}
	if c.anchor != nil {
		a := *c.anchor
		s.PopupAnchor = &a
	}
	return s
}

func (c *SelectionController) show(marker domain.Marker, state domain.SelectionState) {
	coord := marker.Coordinate
	c.active = &marker
	c.anchor = &coord
	c.state = state
	c.surface.SetOverlayPosition(&coord)
}

func (c *SelectionController) reset() {
	c.state = domain.SelectionIdle
	c.active = nil
	c.anchor = nil
	c.surface.SetOverlayPosition(nil)
}

package usecase

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/map-annotation-service/internal/config"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/usecase/dto"
	"github.com/map-annotation-service/internal/worker"
	"go.uber.org/zap"
)

// command - сообщение в цикл рабочей области
type command struct {
	run  func(ctx context.Context) error
	done chan error
}

// mapState - вид карты и попап; реализует MapSurface
type mapState struct {
	view    domain.MapView
	overlay domain.Overlay
}

func (m *mapState) SetOverlayPosition(coord *domain.Coordinate) {
	m.overlay.SetPosition(coord)
}

func (m *mapState) ZoomToFeatures(coords ...domain.Coordinate) {
	m.view.ZoomToFeatures(coords...)
}

// Workspace - единственный владелец состояния карты: слои, хранилище,
// контроллер выбора, процесс создания, настройки иконок.
// Все изменения идут через одну горутину (Start), остальные отправляют команды.
type Workspace struct {
	*worker.BaseWorker

	commands chan command
	exited   chan struct{}

	layers    repository.LayerRepository
	store     repository.FeatureStore
	publisher MarkerEventPublisher

	mapState  *mapState
	selection *SelectionController
	creation  *CreationFlow
	settings  map[domain.Category]domain.IconScaleSetting
}

// NewWorkspace создаёт рабочую область и назначает слоям стили по умолчанию.
// publisher может быть nil - тогда события не публикуются.
func NewWorkspace(
	cfg config.MapConfig,
	layers repository.LayerRepository,
	store repository.FeatureStore,
	publisher MarkerEventPublisher,
	logger *zap.Logger,
) (*Workspace, error) {
	ms := &mapState{
		view: domain.MapView{
			Center:  domain.Coordinate{X: cfg.CenterX, Y: cfg.CenterY},
			Zoom:    cfg.Zoom,
			MinZoom: cfg.MinZoom,
			MaxZoom: cfg.MaxZoom,
			Width:   cfg.ViewportWidth,
			Height:  cfg.ViewportHeight,
		},
		overlay: domain.Overlay{
			AutoPan:           true,
			AutoPanDurationMs: int(cfg.AutoPanDuration.Milliseconds()),
		},
	}

	w := &Workspace{
		BaseWorker: worker.NewBaseWorker("map-workspace", "", logger),
		commands:   make(chan command),
		exited:     make(chan struct{}),
		layers:     layers,
		store:      store,
		publisher:  publisher,
		mapState:   ms,
		selection:  NewSelectionController(ms, logger),
		creation:   NewCreationFlow(layers, store, logger),
		settings:   make(map[domain.Category]domain.IconScaleSetting),
	}

	for _, c := range domain.Categories() {
		if err := w.applyIconScale(c, domain.DefaultIconScaleSetting()); err != nil {
			return nil, fmt.Errorf("init style for %s: %w", c, err)
		}
	}

	return w, nil
}

// Start крутит цикл команд до Stop или отмены контекста
func (w *Workspace) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Map workspace started")
	defer close(w.exited)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Map workspace stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Map workspace context cancelled")
			return ctx.Err()

		case cmd := <-w.commands:
			cmd.done <- w.dispatch(ctx, cmd)
		}
	}
}

// dispatch выполняет команду; паника не роняет цикл
func (w *Workspace) dispatch(ctx context.Context, cmd command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.Logger().Error("Workspace command panicked", zap.Any("panic", r))
			err = errors.ErrInternalServer
		}
	}()
	return cmd.run(ctx)
}

// exec отправляет команду в цикл и ждёт результата
func (w *Workspace) exec(ctx context.Context, fn func(ctx context.Context) error) error {
	cmd := command{run: fn, done: make(chan error, 1)}

	select {
	case w.commands <- cmd:
	case <-w.exited:
		return errors.ErrWorkspaceStopped
	case <-w.StopChan():
		return errors.ErrWorkspaceStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot - полное состояние рабочей области
func (w *Workspace) Snapshot(ctx context.Context) (*dto.WorkspaceSnapshot, error) {
	var snap *dto.WorkspaceSnapshot
	err := w.exec(ctx, func(ctx context.Context) error {
		markers, err := w.store.All(ctx)
		if err != nil {
			return err
		}
		snap = &dto.WorkspaceSnapshot{
			Selection:    w.selection.Snapshot(),
			Creation:     w.creation.Snapshot(),
			View:         w.mapState.view,
			Overlay:      w.mapState.overlay,
			IconSettings: w.iconSettingViews(),
			MarkerCount:  len(markers),
		}
		return nil
	})
	return snap, err
}

// StartDrawing выбирает инструмент рисования категории
func (w *Workspace) StartDrawing(ctx context.Context, category domain.Category) (domain.Creation, error) {
	var out domain.Creation
	err := w.exec(ctx, func(ctx context.Context) error {
		err := w.creation.StartDrawing(category)
		out = w.creation.Snapshot()
		return err
	})
	return out, err
}

// StopDrawing отжимает инструмент рисования
func (w *Workspace) StopDrawing(ctx context.Context) (domain.Creation, error) {
	var out domain.Creation
	err := w.exec(ctx, func(ctx context.Context) error {
		err := w.creation.StopDrawing()
		out = w.creation.Snapshot()
		return err
	})
	return out, err
}

// DrawEnd ставит черновик и открывает окно подтверждения
func (w *Workspace) DrawEnd(ctx context.Context, coord domain.Coordinate) (domain.Creation, error) {
	var out domain.Creation
	err := w.exec(ctx, func(ctx context.Context) error {
		_, err := w.creation.DrawEnd(ctx, coord)
		out = w.creation.Snapshot()
		return err
	})
	return out, err
}

// Confirm переносит черновик в хранилище и публикует событие
func (w *Workspace) Confirm(ctx context.Context, title, description string) (domain.Marker, error) {
	var marker domain.Marker
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		marker, err = w.creation.Confirm(ctx, title, description)
		return err
	})
	if err != nil {
		return domain.Marker{}, err
	}

	w.publish(ctx, domain.NewMarkerEvent(domain.MarkerEventConfirmed, marker))
	return marker, nil
}

// Cancel убирает черновик со слоя и публикует событие
func (w *Workspace) Cancel(ctx context.Context) (domain.Marker, error) {
	var draft domain.Marker
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		draft, err = w.creation.Cancel(ctx)
		return err
	})
	if err != nil {
		return domain.Marker{}, err
	}

	w.publish(ctx, domain.NewMarkerEvent(domain.MarkerEventDiscarded, draft))
	return draft, nil
}

// SelectFeature - событие выбора на карте; ref == nil снимает выбор.
// Выбрать можно только подтверждённый маркер, остальное игнорируется.
func (w *Workspace) SelectFeature(ctx context.Context, ref *FeatureRef) (domain.Selection, error) {
	var out domain.Selection
	err := w.exec(ctx, func(ctx context.Context) error {
		var marker *domain.Marker
		if ref != nil {
			m, ok := w.lookupFeature(ctx, *ref)
			if !ok {
				out = w.selection.Snapshot()
				return nil
			}
			marker = m
		}
		err := w.selection.MapFeatureSelected(marker)
		out = w.selection.Snapshot()
		return err
	})
	return out, err
}

// ClickGridRow - клик по строке таблицы; строки берутся из хранилища,
// неизвестная строка игнорируется
func (w *Workspace) ClickGridRow(ctx context.Context, ref FeatureRef) (domain.Selection, error) {
	var out domain.Selection
	err := w.exec(ctx, func(ctx context.Context) error {
		marker, ok := w.lookupFeature(ctx, ref)
		if !ok {
			out = w.selection.Snapshot()
			return nil
		}
		err := w.selection.GridRowClicked(marker)
		out = w.selection.Snapshot()
		return err
	})
	return out, err
}

// ToggleMode переключает режим выбора
func (w *Workspace) ToggleMode(ctx context.Context, mode domain.SelectionMode) (domain.Selection, error) {
	var out domain.Selection
	err := w.exec(ctx, func(ctx context.Context) error {
		err := w.selection.ModeToggled(mode)
		out = w.selection.Snapshot()
		return err
	})
	return out, err
}

// ClosePopup закрывает попап
func (w *Workspace) ClosePopup(ctx context.Context) (domain.Selection, error) {
	var out domain.Selection
	err := w.exec(ctx, func(ctx context.Context) error {
		err := w.selection.PopupClosed()
		out = w.selection.Snapshot()
		return err
	})
	return out, err
}

// Grid возвращает строки таблицы маркеров
func (w *Workspace) Grid(ctx context.Context, search, order string) (*dto.GridResponse, error) {
	var markers []domain.Marker
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		markers, err = w.store.All(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	grid := BuildGrid(markers, search, order)
	return &grid, nil
}

// IconSettings возвращает настройки иконок всех категорий
func (w *Workspace) IconSettings(ctx context.Context) ([]dto.IconSettingView, error) {
	var out []dto.IconSettingView
	err := w.exec(ctx, func(ctx context.Context) error {
		out = w.iconSettingViews()
		return nil
	})
	return out, err
}

// UpdateIconScale накладывает изменение на настройку категории
// и переназначает стиль слоя
func (w *Workspace) UpdateIconScale(ctx context.Context, category domain.Category, patch domain.IconScalePatch) (dto.IconSettingView, error) {
	var out dto.IconSettingView
	err := w.exec(ctx, func(ctx context.Context) error {
		if !category.Valid() {
			return errors.ErrInvalidCategory
		}
		if err := w.applyIconScale(category, patch.Apply(w.settings[category])); err != nil {
			return err
		}
		out = w.iconSettingView(category)
		return nil
	})
	return out, err
}

// LayerStyle вычисляет стиль слоя при заданном разрешении;
// resolution == 0 означает текущее разрешение карты
func (w *Workspace) LayerStyle(ctx context.Context, category domain.Category, resolution float64) (*dto.StyleResponse, error) {
	var out *dto.StyleResponse
	err := w.exec(ctx, func(ctx context.Context) error {
		style, err := w.layers.Style(category)
		if err != nil {
			return err
		}
		if resolution == 0 {
			resolution = w.mapState.view.Resolution()
		}
		s, err := style(resolution)
		if err != nil {
			return err
		}
		out = &dto.StyleResponse{Category: category, Resolution: resolution, Style: s}
		return nil
	})
	return out, err
}

// LayerFeatures возвращает точки слоя категории (черновики и подтверждённые)
func (w *Workspace) LayerFeatures(ctx context.Context, category domain.Category) ([]domain.Marker, error) {
	var out []domain.Marker
	err := w.exec(ctx, func(ctx context.Context) error {
		var err error
		out, err = w.layers.Features(ctx, category)
		return err
	})
	return out, err
}

// FeatureRef - ссылка на маркер категории
type FeatureRef struct {
	Category domain.Category
	ID       domain.FeatureID
}

// lookupFeature ищет маркер в хранилище; черновики туда не попадают
func (w *Workspace) lookupFeature(ctx context.Context, ref FeatureRef) (*domain.Marker, bool) {
	marker, err := w.store.GetByID(ctx, ref.Category, ref.ID)
	if err != nil {
		if stderrors.Is(err, errors.ErrMarkerNotFound) || stderrors.Is(err, errors.ErrInvalidCategory) {
			w.Logger().Warn("Selected feature not found, ignoring",
				zap.Stringer("category", ref.Category),
				zap.Stringer("id", ref.ID),
				zap.Error(err))
			return nil, false
		}
		w.Logger().Error("Feature lookup failed", zap.Error(err))
		return nil, false
	}
	return marker, true
}

func (w *Workspace) applyIconScale(category domain.Category, setting domain.IconScaleSetting) error {
	style, err := ResolveStyle(category, setting, AnchorIconFor(category))
	if err != nil {
		return err
	}
	if err := w.layers.SetStyle(category, style); err != nil {
		return err
	}
	w.settings[category] = setting

	w.Logger().Debug("Layer style updated",
		zap.String("layer", string(category.Layer())),
		zap.Bool("enabled", setting.Enabled),
		zap.Float64("exponent", setting.Exponent))
	return nil
}

func (w *Workspace) iconSettingView(category domain.Category) dto.IconSettingView {
	return dto.IconSettingView{
		Category: category,
		Layer:    category.Layer(),
		Icon:     AnchorIconFor(category),
		Setting:  w.settings[category],
	}
}

func (w *Workspace) iconSettingViews() []dto.IconSettingView {
	views := make([]dto.IconSettingView, 0, len(w.settings))
	for _, c := range domain.Categories() {
		views = append(views, w.iconSettingView(c))
	}
	return views
}

func (w *Workspace) publish(ctx context.Context, event *domain.MarkerEvent) {
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.Logger().Error("Failed to publish marker event",
			zap.String("type", string(event.Type)),
			zap.Stringer("marker_id", event.Marker.ID),
			zap.Error(err))
	}
}

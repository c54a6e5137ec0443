package usecase

import (
	"context"
	"fmt"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/domain/repository"
	"github.com/map-annotation-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// CreationFlow - создание маркера: NotDrawing -> Drawing -> AwaitingConfirmation.
// Черновик живёт только на слое, в хранилище попадает после Confirm.
// Не потокобезопасен, владелец - Workspace.
type CreationFlow struct {
	state    domain.CreationState
	category domain.Category
	draft    *domain.Marker

	layers repository.LayerRepository
	store  repository.FeatureStore
	logger *zap.Logger
}

func NewCreationFlow(
	layers repository.LayerRepository,
	store repository.FeatureStore,
	logger *zap.Logger,
) *CreationFlow {
	return &CreationFlow{
		state:  domain.CreationNotDrawing,
		layers: layers,
		store:  store,
		logger: logger,
	}
}

// StartDrawing выбирает инструмент категории
func (f *CreationFlow) StartDrawing(category domain.Category) error {
	if !category.Valid() {
		return errors.ErrInvalidCategory
	}
	if f.state == domain.CreationAwaitingConfirmation {
		return f.invalid("start drawing")
	}

	f.state = domain.CreationDrawing
	f.category = category
	return nil
}

// StopDrawing отжимает инструмент без рисования
func (f *CreationFlow) StopDrawing() error {
	if f.state != domain.CreationDrawing {
		return f.invalid("stop drawing")
	}
	f.state = domain.CreationNotDrawing
	f.category = domain.CategoryUnknown
	return nil
}

// DrawEnd - точка поставлена: черновик кладётся на слой категории
// и открывается окно подтверждения
func (f *CreationFlow) DrawEnd(ctx context.Context, coord domain.Coordinate) (domain.Marker, error) {
	if f.state != domain.CreationDrawing {
		return domain.Marker{}, f.invalid("draw end")
	}

	draft, err := f.layers.AddDraft(ctx, f.category, coord)
	if err != nil {
		return domain.Marker{}, fmt.Errorf("add draft to %s: %w", f.category.Layer(), err)
	}

	f.draft = &draft
	f.state = domain.CreationAwaitingConfirmation

	f.logger.Debug("Draft marker placed",
		zap.Stringer("id", draft.ID),
		zap.Stringer("category", draft.Category))
	return draft, nil
}

// Confirm записывает атрибуты черновика и переносит его в хранилище.
// Пустые title/description допустимы.
func (f *CreationFlow) Confirm(ctx context.Context, title, description string) (domain.Marker, error) {
	if f.state != domain.CreationAwaitingConfirmation {
		return domain.Marker{}, f.invalid("confirm")
	}

	draft := *f.draft
	f.state = domain.CreationNotDrawing
	f.draft = nil
	f.category = domain.CategoryUnknown

	// Слой - источник правды для черновика
	onLayer, err := f.layers.GetFeatureByID(ctx, draft.Category, draft.ID)
	if err != nil {
		return domain.Marker{}, fmt.Errorf("draft %d left its layer: %w", draft.ID, err)
	}
	marker := *onLayer
	marker.Title = title
	marker.Description = description

	if err := f.layers.UpdateFeature(ctx, marker); err != nil {
		return domain.Marker{}, fmt.Errorf("update feature %d: %w", marker.ID, err)
	}

	if err := f.store.Add(ctx, marker); err != nil {
		f.logger.Error("Failed to promote marker to feature store",
			zap.Stringer("id", marker.ID),
			zap.Error(err))
		return domain.Marker{}, err
	}

	f.logger.Info("Marker confirmed",
		zap.Stringer("id", marker.ID),
		zap.Stringer("category", marker.Category))
	return marker, nil
}

// Cancel убирает черновик со слоя без переноса в хранилище
func (f *CreationFlow) Cancel(ctx context.Context) (domain.Marker, error) {
	if f.state != domain.CreationAwaitingConfirmation {
		return domain.Marker{}, f.invalid("cancel")
	}

	draft := *f.draft
	f.state = domain.CreationNotDrawing
	f.draft = nil
	f.category = domain.CategoryUnknown

	if err := f.layers.RemoveFeature(ctx, draft.Category, draft.ID); err != nil {
		return domain.Marker{}, fmt.Errorf("remove draft %d: %w", draft.ID, err)
	}

	f.logger.Debug("Draft marker discarded", zap.Stringer("id", draft.ID))
	return draft, nil
}

// State возвращает текущее состояние
func (f *CreationFlow) State() domain.CreationState {
	return f.state
}

// Snapshot возвращает копию состояния для отображения окна подтверждения
func (f *CreationFlow) Snapshot() domain.Creation {
	s := domain.Creation{State: f.state}
	if f.category.Valid() {
		c := f.category
		s.Category = &c
	}
	if f.draft != nil {
		d := *f.draft
		s.Draft = &d
		s.ModalTitle = "id" + d.ID.String()
	}
	return s
}

func (f *CreationFlow) invalid(event string) error {
	f.logger.Warn("Invalid creation flow transition",
		zap.String("event", event),
		zap.String("state", string(f.state)))
	return fmt.Errorf("%s in %s: %w", event, f.state, errors.ErrInvalidTransition)
}

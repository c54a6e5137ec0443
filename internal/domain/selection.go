package domain

import "fmt"

// SelectionMode - режим выбора маркера на карте
type SelectionMode string

const (
	// SelectionModeGrouped - позиционированный попап с приближением к маркеру
	SelectionModeGrouped SelectionMode = "grouped"
	// SelectionModeUngrouped - простой флаг видимости без позиционирования
	SelectionModeUngrouped SelectionMode = "ungrouped"
)

// ParseSelectionMode разбирает режим выбора
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch SelectionMode(s) {
	case SelectionModeGrouped, SelectionModeUngrouped:
		return SelectionMode(s), nil
	}
	return "", fmt.Errorf("unknown selection mode %q", s)
}

// SelectionState - состояние контроллера попапа
type SelectionState string

const (
	SelectionIdle       SelectionState = "idle"
	SelectionPopupShown SelectionState = "popup_shown"
	SelectionModalShown SelectionState = "modal_shown"
)

// Selection - снимок состояния выбора
type Selection struct {
	Mode         SelectionMode  `json:"mode"`
	State        SelectionState `json:"state"`
	Active       *Marker        `json:"active,omitempty"`
	PopupVisible bool           `json:"popup_visible"`
	ModalVisible bool           `json:"modal_visible"`
	PopupAnchor  *Coordinate    `json:"popup_anchor,omitempty"`
}

// CreationState - состояние процесса создания маркера
type CreationState string

const (
	CreationNotDrawing           CreationState = "not_drawing"
	CreationDrawing              CreationState = "drawing"
	CreationAwaitingConfirmation CreationState = "awaiting_confirmation"
)

// Creation - снимок процесса создания маркера
type Creation struct {
	State    CreationState `json:"state"`
	Category *Category     `json:"category,omitempty"`
	Draft    *Marker       `json:"draft,omitempty"`
	// ModalTitle - заголовок окна подтверждения ("id" + идентификатор черновика)
	ModalTitle string `json:"modal_title,omitempty"`
}

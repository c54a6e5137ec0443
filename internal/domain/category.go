package domain

import (
	"fmt"
	"strings"
)

// Category - вид маркера. Определяет иконку и слой, в котором лежит маркер
type Category int

const (
	CategoryUnknown Category = iota
	CategoryChecked
	CategoryDelete
	CategoryText
)

// LayerName - имя векторного слоя для рисования маркеров
type LayerName string

const (
	LayerMarkerChecked LayerName = "mapMarkerChecked"
	LayerMarkerDelete  LayerName = "mapMarkerDelete"
	LayerMarkerText    LayerName = "mapMarkerText"
)

type categoryInfo struct {
	name  string
	layer LayerName
	icon  string
}

// categoryTable - таблица соответствия категории, слоя и иконки
var categoryTable = map[Category]categoryInfo{
	CategoryChecked: {name: "checked", layer: LayerMarkerChecked, icon: "comment-checked.svg"},
	CategoryDelete:  {name: "delete", layer: LayerMarkerDelete, icon: "comment-delete.svg"},
	CategoryText:    {name: "text", layer: LayerMarkerText, icon: "comment-text.svg"},
}

// Categories возвращает все известные категории в порядке отображения
func Categories() []Category {
	return []Category{CategoryChecked, CategoryDelete, CategoryText}
}

// ParseCategory разбирает имя категории ("checked", "delete", "text")
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, info := range categoryTable {
		if info.name == name {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown marker category %q", s)
}

// Valid проверяет, что категория входит в закрытый набор
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

func (c Category) String() string {
	if info, ok := categoryTable[c]; ok {
		return info.name
	}
	return "unknown"
}

// Layer возвращает слой категории
func (c Category) Layer() LayerName {
	return categoryTable[c].layer
}

// Icon возвращает имя файла иконки категории
func (c Category) Icon() string {
	return categoryTable[c].icon
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid marker category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

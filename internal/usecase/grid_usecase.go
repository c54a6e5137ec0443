package usecase

import (
	"sort"
	"strings"
	"unicode"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/utils"
	"github.com/map-annotation-service/internal/usecase/dto"
	"github.com/samber/lo"
)

const (
	SortAscend  = "ascend"
	SortDescend = "descend"
)

// BuildGrid проецирует маркеры в строки таблицы: фильтр по подстроке title
// без учёта регистра, сортировка по title (по умолчанию ascend).
func BuildGrid(markers []domain.Marker, search, order string) dto.GridResponse {
	if order == "" {
		order = SortAscend
	}

	filtered := lo.Filter(markers, func(m domain.Marker, _ int) bool {
		return MatchTitle(m.Title, search)
	})

	rows := lo.Map(filtered, func(m domain.Marker, _ int) dto.GridRow {
		lon, lat := utils.ToLonLat(m.Coordinate.X, m.Coordinate.Y)
		return dto.GridRow{
			Key:         int64(m.ID),
			Title:       m.Title,
			Description: m.Description,
			Category:    m.Category,
			X:           m.Coordinate.X,
			Y:           m.Coordinate.Y,
			Lon:         lon,
			Lat:         lat,
			Highlights:  HighlightRanges(m.Title, search),
		}
	})

	sort.SliceStable(rows, func(i, j int) bool {
		c := CompareTitles(rows[i].Title, rows[j].Title)
		if order == SortDescend {
			return c > 0
		}
		return c < 0
	})

	return dto.GridResponse{
		Rows:   rows,
		Total:  len(rows),
		Search: search,
		Order:  order,
	}
}

// CompareTitles сравнивает заголовки в верхнем регистре
func CompareTitles(a, b string) int {
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

// MatchTitle - title содержит строку поиска без учёта регистра; пустой поиск совпадает со всем
func MatchTitle(title, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(search))
}

// HighlightRanges возвращает непересекающиеся вхождения search в text (в рунах)
func HighlightRanges(text, search string) []dto.TextRange {
	if search == "" {
		return nil
	}

	haystack := foldRunes(text)
	needle := foldRunes(search)
	if len(needle) > len(haystack) {
		return nil
	}

	var ranges []dto.TextRange
	for i := 0; i+len(needle) <= len(haystack); {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			ranges = append(ranges, dto.TextRange{Start: i, End: i + len(needle)})
			i += len(needle)
			continue
		}
		i++
	}
	return ranges
}

func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

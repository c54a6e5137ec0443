// Package docs Map Annotation Service API.
//
// Сервис аннотирования карты. Пользователь ставит маркеры трёх категорий,
// подтверждает заголовок и описание, просматривает таблицу маркеров,
// выбирает маркеры на карте и настраивает масштабирование иконок от зума.
//
// Основные возможности:
// - Рисование, подтверждение и отмена маркеров
// - Попап выбора в режимах grouped и ungrouped
// - Поиск и сортировка маркеров по заголовку
// - Стили слоёв и экспорт слоёв в GeoJSON
// - Координата курсора и геодезические измерения
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
// swagger:meta
package docs

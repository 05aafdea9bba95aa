// Package catalog holds the static fallback recommendation data served when
// the remote backend cannot be reached.
package catalog

import (
	"github.com/vmelnikov/kinosovetnik/internal/intent"
)

// Item is a single recommended title. Immutable; sourced either from the
// backend response or from this catalog.
type Item struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
	Score       float64  `json:"score"`
	URL         string   `json:"url"`
	MoodMatch   float64  `json:"mood_match,omitempty"`
	TimeMatch   float64  `json:"time_match,omitempty"`
}

// Catalog maps every genre in the taxonomy to a fixed, ordered list of items.
type Catalog struct {
	items map[intent.Genre][]Item
}

// New builds the catalog with its reference data. Every known genre has a
// non-empty list; order within a list is significant and stable.
func New() *Catalog {
	return &Catalog{items: map[intent.Genre][]Item{
		intent.GenreComedy: {
			{
				Title:       "Отпетые мошенники",
				Genres:      []string{"Комедия", "Приключения"},
				Description: "Два мошенника соревнуются в искусстве обмана богатых туристов на французской Ривьере.",
				Score:       8.2,
				URL:         "https://okko.tv/movie/comedy1",
			},
			{
				Title:       "Невероятная жизнь Уолтера Митти",
				Genres:      []string{"Комедия", "Драма", "Приключения"},
				Description: "Скромный сотрудник журнала отправляется в невероятное путешествие вокруг света.",
				Score:       7.8,
				URL:         "https://okko.tv/movie/comedy2",
			},
		},
		intent.GenreDrama: {
			{
				Title:       "Форма воды",
				Genres:      []string{"Драма", "Фэнтези", "Романтика"},
				Description: "История любви между немой уборщицей и загадочным амфибией-гуманоидом.",
				Score:       9.1,
				URL:         "https://okko.tv/movie/drama1",
			},
			{
				Title:       "Три билборда на границе Эббинга, Миссури",
				Genres:      []string{"Драма", "Криминал"},
				Description: "Мать, потерявшая дочь, бросает вызов местной полиции, арендовав три билборда.",
				Score:       8.9,
				URL:         "https://okko.tv/movie/drama2",
			},
		},
		intent.GenreRomance: {
			{
				Title:       "Ла-Ла Ленд",
				Genres:      []string{"Мюзикл", "Романтика", "Драма"},
				Description: "История любви между джазовым пианистом и начинающей актрисой в Лос-Анджелесе.",
				Score:       8.7,
				URL:         "https://okko.tv/movie/romance1",
			},
			{
				Title:       "Вечное сияние чистого разума",
				Genres:      []string{"Романтика", "Драма", "Фантастика"},
				Description: "Мужчина пытается стереть воспоминания о бывшей девушке из своей памяти.",
				Score:       8.5,
				URL:         "https://okko.tv/movie/romance2",
			},
		},
		intent.GenreHorror: {
			{
				Title:       "Наследственное",
				Genres:      []string{"Ужасы", "Триллер", "Драма"},
				Description: "После смерти матери семью начинают преследовать ужасающие тайны.",
				Score:       7.9,
				URL:         "https://okko.tv/movie/horror1",
			},
			{
				Title:       "Тихое место",
				Genres:      []string{"Ужасы", "Триллер", "Фантастика"},
				Description: "Семья живет в полной тишине, скрываясь от существ, охотящихся по звуку.",
				Score:       8.1,
				URL:         "https://okko.tv/movie/horror2",
			},
		},
		intent.GenreAction: {
			{
				Title:       "Джон Уик",
				Genres:      []string{"Боевик", "Триллер"},
				Description: "Бывший киллер выходит из отставки, чтобы отомстить за убийство своей собаки.",
				Score:       8.4,
				URL:         "https://okko.tv/movie/action1",
			},
			{
				Title:       "Безумный Макс: Дорога ярости",
				Genres:      []string{"Боевик", "Фантастика", "Приключения"},
				Description: "В пост-апокалиптическом мире Макс помогает группе женщин сбежать от тирана.",
				Score:       8.8,
				URL:         "https://okko.tv/movie/action2",
			},
		},
		intent.GenreMixed: {
			{
				Title:       "Паразиты",
				Genres:      []string{"Триллер", "Драма", "Комедия"},
				Description: "Бедная семья постепенно проникает в жизнь богатой семьи с непредсказуемыми последствиями.",
				Score:       9.3,
				URL:         "https://okko.tv/movie/mixed1",
			},
			{
				Title:       "Интерстеллар",
				Genres:      []string{"Фантастика", "Драма", "Приключения"},
				Description: "Группа астронавтов путешествует через червоточину в поисках нового дома для человечества.",
				Score:       9.0,
				URL:         "https://okko.tv/movie/mixed2",
			},
			{
				Title:       "Джокер",
				Genres:      []string{"Драма", "Триллер", "Криминал"},
				Description: "Происхождение одного из самых известных злодеев в истории комиксов.",
				Score:       8.6,
				URL:         "https://okko.tv/movie/mixed3",
			},
		},
	}}
}

// Lookup returns the fixed list for the genre. Unknown genres fall back to
// the mixed list, so the lookup is total and never empty. The returned slice
// is a copy; callers may not reach the backing data.
func (c *Catalog) Lookup(genre intent.Genre) []Item {
	items, ok := c.items[genre]
	if !ok {
		items = c.items[intent.GenreMixed]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

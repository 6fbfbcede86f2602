// Package entity defines the domain entities.
package entity

// Genre is the plot genre enum.
type Genre string

const (
	GenreFantasy     Genre = "fantasy"
	GenreRomance     Genre = "romance"
	GenreMystery     Genre = "mystery"
	GenreSciFi       Genre = "sci_fi"
	GenreHorror      Genre = "horror"
	GenreSliceOfLife Genre = "slice_of_life"
	GenreAdventure   Genre = "adventure"
)

// genreOrder is the canonical listing order.
var genreOrder = []Genre{
	GenreFantasy,
	GenreRomance,
	GenreMystery,
	GenreSciFi,
	GenreHorror,
	GenreSliceOfLife,
	GenreAdventure,
}

var genreDisplayNames = map[Genre]string{
	GenreFantasy:     "ファンタジー",
	GenreRomance:     "恋愛",
	GenreMystery:     "ミステリー",
	GenreSciFi:       "SF",
	GenreHorror:      "ホラー",
	GenreSliceOfLife: "日常系",
	GenreAdventure:   "冒険",
}

// Genres returns all genres in canonical order.
func Genres() []Genre {
	out := make([]Genre, len(genreOrder))
	copy(out, genreOrder)
	return out
}

// Valid reports whether g is one of the defined genres.
func (g Genre) Valid() bool {
	_, ok := genreDisplayNames[g]
	return ok
}

// DisplayName returns the human readable genre name.
func (g Genre) DisplayName() string {
	return genreDisplayNames[g]
}

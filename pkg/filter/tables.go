package filter

// Order matters in every table below: scans stop at the first entry found.

// genres is the genre allow-list. "science fiction" is reported as "sci-fi".
var genres = []string{
	"action",
	"adventure",
	"animation",
	"anime",
	"biography",
	"comedy",
	"crime",
	"documentary",
	"drama",
	"family",
	"fantasy",
	"film-noir",
	"history",
	"horror",
	"musical",
	"mystery",
	"romance",
	"sci-fi",
	"science fiction",
	"sport",
	"thriller",
	"war",
	"western",
}

var genreAliases = map[string]string{
	"science fiction": "sci-fi",
}

// contentRatings lists the recognized certification labels.
var contentRatings = []string{
	"G",
	"PG",
	"PG-13",
	"R",
	"NC-17",
	"TV-Y",
	"TV-Y7",
	"TV-G",
	"TV-PG",
	"TV-14",
	"TV-MA",
}

// keywordRule maps a set of phrases to a value. The first rule with a phrase
// contained in the text wins.
type keywordRule[T any] struct {
	phrases []string
	value   T
}

var mediaTypeRules = []keywordRule[MediaType]{
	{phrases: []string{"movie", "film"}, value: TypeMovie},
	{phrases: []string{"show", "series", "tv"}, value: TypeShow},
	{phrases: []string{"episode"}, value: TypeEpisode},
}

type sortIntent struct {
	field SortField
	order SortOrder // empty when the phrase implies no direction
}

var sortRules = []keywordRule[sortIntent]{
	{phrases: []string{"best", "top rated", "highest rated"}, value: sortIntent{SortRating, OrderDesc}},
	{phrases: []string{"newest", "latest", "recent"}, value: sortIntent{SortAddedAt, OrderDesc}},
	{phrases: []string{"oldest"}, value: sortIntent{SortYear, OrderAsc}},
	{phrases: []string{"random", "surprise"}, value: sortIntent{field: SortRandom}},
}

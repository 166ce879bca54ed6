package filter

// DefaultLimit is the page size used when a filter does not set one.
const DefaultLimit = 25

// Defaults holds the values Resolve fills into unset fields.
type Defaults struct {
	Type      MediaType
	Sort      SortField
	SortOrder SortOrder
	Limit     int
}

// TextDefaults apply to filters extracted from free text.
var TextDefaults = Defaults{
	Type:      TypeMovie,
	Sort:      SortTitle,
	SortOrder: OrderAsc,
	Limit:     DefaultLimit,
}

// StructuredDefaults apply to filters supplied as structured input.
var StructuredDefaults = Defaults{
	Type:      TypeMovie,
	Sort:      SortTitle,
	SortOrder: OrderDesc,
	Limit:     DefaultLimit,
}

// Resolve returns f with defaults applied to its unset fields. It performs no
// clamping or cross-field validation.
//
// A sort order other than "desc" resolves to "asc" once the default has been
// applied, so the result always carries a concrete direction.
func Resolve(f Filter, d Defaults) Filter {
	if f.Type == "" {
		f.Type = d.Type
	}
	if f.Sort == "" {
		f.Sort = d.Sort
	}
	if f.SortOrder == "" {
		f.SortOrder = d.SortOrder
	}
	if f.SortOrder != OrderDesc {
		f.SortOrder = OrderAsc
	}
	if f.Limit == nil {
		f.Limit = Ptr(d.Limit)
	}
	return f
}

// Merge overlays the set fields of overlay onto base. Overlay is the caller's
// structured filter and wins wherever both set a field.
func Merge(base, overlay Filter) Filter {
	out := base
	if overlay.Type != "" {
		out.Type = overlay.Type
	}
	if overlay.SectionID != "" {
		out.SectionID = overlay.SectionID
	}
	if overlay.Title != "" {
		out.Title = overlay.Title
	}
	if overlay.Year != nil {
		out.Year = overlay.Year
	}
	if overlay.MinYear != nil {
		out.MinYear = overlay.MinYear
	}
	if overlay.MaxYear != nil {
		out.MaxYear = overlay.MaxYear
	}
	if overlay.Decade != nil {
		out.Decade = overlay.Decade
	}
	if overlay.Genre != "" {
		out.Genre = overlay.Genre
	}
	if overlay.ContentRating != "" {
		out.ContentRating = overlay.ContentRating
	}
	if overlay.MinRating != nil {
		out.MinRating = overlay.MinRating
	}
	if overlay.MaxRating != nil {
		out.MaxRating = overlay.MaxRating
	}
	if overlay.Director != "" {
		out.Director = overlay.Director
	}
	if overlay.Actor != "" {
		out.Actor = overlay.Actor
	}
	if overlay.Studio != "" {
		out.Studio = overlay.Studio
	}
	out.Unwatched = out.Unwatched || overlay.Unwatched
	out.Watched = out.Watched || overlay.Watched
	out.InProgress = out.InProgress || overlay.InProgress
	if overlay.MinDurationMinutes != nil {
		out.MinDurationMinutes = overlay.MinDurationMinutes
	}
	if overlay.MaxDurationMinutes != nil {
		out.MaxDurationMinutes = overlay.MaxDurationMinutes
	}
	if overlay.AddedWithinDays != nil {
		out.AddedWithinDays = overlay.AddedWithinDays
	}
	if overlay.Resolution != "" {
		out.Resolution = overlay.Resolution
	}
	if overlay.Sort != "" {
		out.Sort = overlay.Sort
		out.SortOrder = overlay.SortOrder
	}
	if overlay.SortOrder != "" {
		out.SortOrder = overlay.SortOrder
	}
	if overlay.Limit != nil {
		out.Limit = overlay.Limit
	}
	return out
}

package query

import "errors"

// ErrNoSection indicates no section was given and none matches the filter's
// media type family.
var ErrNoSection = errors.New("could not determine library section for search")

package plex

import (
	"encoding/xml"
	"time"
)

// Record is a media item returned by a section search.
type Record struct {
	RatingKey     string   `json:"ratingKey"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Year          int      `json:"year,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Duration      int64    `json:"duration,omitempty"` // milliseconds
	Summary       string   `json:"summary,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Directors     []string `json:"directors,omitempty"`
	Cast          []string `json:"cast,omitempty"`
	Studio        string   `json:"studio,omitempty"`
	ContentRating string   `json:"contentRating,omitempty"`
	ViewCount     int      `json:"viewCount,omitempty"`
	ViewOffset    int64    `json:"viewOffset,omitempty"` // milliseconds
	AddedAt       int64    `json:"addedAt,omitempty"`    // unix seconds
}

// Runtime returns the record duration.
func (r Record) Runtime() time.Duration {
	return time.Duration(r.Duration) * time.Millisecond
}

// Progress returns the fraction of the record already watched, or 0 when it
// has not been started or has no known duration.
func (r Record) Progress() float64 {
	if r.Duration <= 0 || r.ViewOffset <= 0 {
		return 0
	}
	return float64(r.ViewOffset) / float64(r.Duration)
}

type tagXML struct {
	Tag string `xml:"tag,attr"`
}

// itemXML is the XML representation of a Plex item.
type itemXML struct {
	RatingKey      string   `xml:"ratingKey,attr"`
	Title          string   `xml:"title,attr"`
	Type           string   `xml:"type,attr"`
	Year           int      `xml:"year,attr"`
	Rating         float64  `xml:"rating,attr"`
	AudienceRating float64  `xml:"audienceRating,attr"`
	Duration       int64    `xml:"duration,attr"`
	Summary        string   `xml:"summary,attr"`
	Studio         string   `xml:"studio,attr"`
	ContentRating  string   `xml:"contentRating,attr"`
	ViewCount      int      `xml:"viewCount,attr"`
	ViewOffset     int64    `xml:"viewOffset,attr"`
	AddedAt        int64    `xml:"addedAt,attr"`
	Genres         []tagXML `xml:"Genre"`
	Directors      []tagXML `xml:"Director"`
	Roles          []tagXML `xml:"Role"`
}

// libraryItemsResponse is the XML response from /library/sections/{key}/all.
type libraryItemsResponse struct {
	XMLName     xml.Name  `xml:"MediaContainer"`
	Videos      []itemXML `xml:"Video"`     // Movies, episodes
	Directories []itemXML `xml:"Directory"` // TV shows, artists, albums
	Tracks      []itemXML `xml:"Track"`
}

func (r libraryItemsResponse) records() []Record {
	all := make([]itemXML, 0, len(r.Videos)+len(r.Directories)+len(r.Tracks))
	all = append(all, r.Videos...)
	all = append(all, r.Directories...)
	all = append(all, r.Tracks...)

	records := make([]Record, len(all))
	for i, item := range all {
		rating := item.Rating
		if rating == 0 {
			rating = item.AudienceRating
		}
		records[i] = Record{
			RatingKey:     item.RatingKey,
			Title:         item.Title,
			Type:          item.Type,
			Year:          item.Year,
			Rating:        rating,
			Duration:      item.Duration,
			Summary:       item.Summary,
			Genres:        tags(item.Genres),
			Directors:     tags(item.Directors),
			Cast:          tags(item.Roles),
			Studio:        item.Studio,
			ContentRating: item.ContentRating,
			ViewCount:     item.ViewCount,
			ViewOffset:    item.ViewOffset,
			AddedAt:       item.AddedAt,
		}
	}
	return records
}

func tags(in []tagXML) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, t := range in {
		out[i] = t.Tag
	}
	return out
}

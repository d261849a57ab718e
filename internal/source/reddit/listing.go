package reddit

import (
	"encoding/json"
	"fmt"
	"time"

	"prospector/internal/content"
)

const (
	kindListing    = "Listing"
	kindSubmission = "t3"
	kindComment    = "t1"
	kindMore       = "more"
)

// thing is Reddit's tagged container for every API object.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
}

func (t thing) listingChildren() ([]thing, error) {
	if t.Kind != kindListing {
		return nil, fmt.Errorf("expected listing, got kind %q", t.Kind)
	}
	var data listingData
	if err := json.Unmarshal(t.Data, &data); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return data.Children, nil
}

type submissionData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	Author     string  `json:"author"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

func (d submissionData) item() content.Item {
	return content.Item{
		Kind:       content.KindPost,
		Title:      d.Title,
		Body:       d.Selftext,
		Permalink:  d.Permalink,
		Author:     d.Author,
		Score:      d.Score,
		CreatedUTC: time.Unix(int64(d.CreatedUTC), 0).UTC(),
	}
}

type commentData struct {
	ID         string          `json:"id"`
	Body       string          `json:"body"`
	Permalink  string          `json:"permalink"`
	Author     string          `json:"author"`
	Score      int             `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}

func (d commentData) item() content.Item {
	return content.Item{
		Kind:       content.KindComment,
		Body:       d.Body,
		Permalink:  d.Permalink,
		Author:     d.Author,
		Score:      d.Score,
		CreatedUTC: time.Unix(int64(d.CreatedUTC), 0).UTC(),
	}
}

type moreData struct {
	Children []string `json:"children"`
}

package content

import (
	"strings"
	"time"
)

// Kind discriminates the two content item variants.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// UnknownAuthor is substituted when the platform reports no author
// (deleted or suspended accounts).
const UnknownAuthor = "[deleted]"

// Item is a single unit of user-authored content pulled from a community.
// Posts carry a title and an optional body; comments carry only a body.
type Item struct {
	Kind       Kind
	Title      string
	Body       string
	Permalink  string
	Author     string
	Score      int
	CreatedUTC time.Time
}

// Text returns the free-text portion the matcher evaluates: title plus body
// for posts, body alone for comments.
func (i Item) Text() string {
	if i.Kind != KindPost || i.Title == "" {
		return i.Body
	}
	if i.Body == "" {
		return i.Title
	}
	return i.Title + " " + i.Body
}

// DisplayAuthor returns the author name or the deleted-account placeholder.
func (i Item) DisplayAuthor() string {
	if strings.TrimSpace(i.Author) == "" {
		return UnknownAuthor
	}
	return i.Author
}

// Match pairs an item with the similarity outcome that selected it.
// MatchedPhrase is only populated in modes that track provenance.
type Match struct {
	Item          Item
	MatchedScore  int
	MatchedPhrase string
}

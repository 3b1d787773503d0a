package ideas

import (
	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/enums"
)

// CreateRequest carries the author-supplied fields of a new idea. Only the
// title is required; a missing category falls back to the first seeded one.
// The author is taken from the request identity, never from the body.
type CreateRequest struct {
	Title            string `json:"title" validate:"required"`
	ShortDescription string `json:"short_description"`
	FullDescription  string `json:"full_description"`
	ExpectedEffect   string `json:"expected_effect"`
	Category         string `json:"category"`
	AuthorID         int64  `json:"-"`
}

// VoteResult reports the tallies after a vote is counted.
type VoteResult struct {
	VotesFor     int `json:"votes_for"`
	VotesAgainst int `json:"votes_against"`
}

// ListRequest selects a public view and a page within it.
type ListRequest struct {
	View enums.IdeaView
	Page int
}

// ListResult is one page of a public view.
type ListResult struct {
	Ideas      []records.Idea `json:"ideas"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// SearchResult reports an administrative title search.
type SearchResult struct {
	Ideas      []records.Idea `json:"ideas"`
	Query      string         `json:"search_query"`
	TotalFound int            `json:"total_found"`
}

// Package ideas implements the idea aggregate: creation, voting, comments,
// curation flags, and the public and administrative listings. Every mutation
// runs as one document transaction so vote and comment rules hold under
// concurrent callers.
package ideas

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/docstore"
	"github.com/ideabank/ideabank-backend/pkg/enums"
	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/ideabank/ideabank-backend/pkg/pagination"
)

// Service defines the behavior needed by the idea controllers.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Get(ctx context.Context, ideaID int64) (*records.Idea, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	ListAll(ctx context.Context) ([]records.Idea, error)
	SearchByTitle(ctx context.Context, query string) (*SearchResult, error)
	Vote(ctx context.Context, ideaID, userID int64, direction enums.VoteDirection) (*VoteResult, error)
	AddComment(ctx context.Context, ideaID, userID int64, text string) (int64, error)
	DeleteComment(ctx context.Context, ideaID, commentID int64) error
	Approve(ctx context.Context, ideaID int64) error
	Hide(ctx context.Context, ideaID int64) error
	Unhide(ctx context.Context, ideaID int64) error
	DeleteByAuthor(ctx context.Context, userID int64) (int, error)
}

type service struct {
	ideas  *docstore.Store[records.IdeasDocument]
	config *docstore.Store[records.ConfigDocument]
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an idea service.
type ServiceParams struct {
	Ideas  *docstore.Store[records.IdeasDocument]
	Config *docstore.Store[records.ConfigDocument]
}

// NewService constructs an idea service over the idea and config documents.
func NewService(params ServiceParams) (Service, error) {
	if params.Ideas == nil {
		return nil, fmt.Errorf("ideas store is required")
	}
	if params.Config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	return &service{
		ideas:  params.Ideas,
		config: params.Config,
		now:    time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = records.DefaultCategories[0]
	}

	var ideaID int64
	err := s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		doc.LastIdeaID++
		ideaID = doc.LastIdeaID
		doc.Ideas = append(doc.Ideas, records.Idea{
			ID:               ideaID,
			Title:            title,
			ShortDescription: req.ShortDescription,
			FullDescription:  req.FullDescription,
			ExpectedEffect:   req.ExpectedEffect,
			AuthorID:         req.AuthorID,
			Category:         category,
			VotedUsers:       []int64{},
			CreatedAt:        s.now().UTC(),
			Comments:         []records.Comment{},
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return ideaID, nil
}

// Get returns one idea on the public path; hidden ideas read as absent.
// The result is detached from the document, so later transactions cannot
// rewrite it.
func (s *service) Get(ctx context.Context, ideaID int64) (*records.Idea, error) {
	var found *records.Idea
	err := s.ideas.View(ctx, func(doc *records.IdeasDocument) error {
		idea := doc.FindByID(ideaID)
		if idea == nil || idea.IsHidden {
			return pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		copied := idea.Clone()
		found = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	perPage := pagination.DefaultPerPage
	err := s.config.View(ctx, func(doc *records.ConfigDocument) error {
		if doc.Settings.ItemsPerPage > 0 {
			perPage = doc.Settings.ItemsPerPage
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var visible []records.Idea
	err = s.ideas.View(ctx, func(doc *records.IdeasDocument) error {
		for i := range doc.Ideas {
			if !doc.Ideas[i].IsHidden {
				visible = append(visible, doc.Ideas[i].Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch req.View {
	case enums.IdeaViewNew:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].CreatedAt.After(visible[j].CreatedAt)
		})
	case enums.IdeaViewPopular:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].VotesFor-visible[i].VotesAgainst > visible[j].VotesFor-visible[j].VotesAgainst
		})
	case enums.IdeaViewApproved:
		visible = filterIdeas(visible, func(i records.Idea) bool { return i.IsApproved })
	default:
		// open: not yet approved, still up for discussion
		visible = filterIdeas(visible, func(i records.Idea) bool { return !i.IsApproved })
	}

	page := pagination.Normalize(req.Page, perPage, perPage)
	start, end := page.Bounds(len(visible))
	return &ListResult{
		Ideas:      visible[start:end],
		Page:       page.Number,
		PerPage:    page.PerPage,
		TotalItems: len(visible),
		TotalPages: page.Pages(len(visible)),
	}, nil
}

// ListAll returns every idea including hidden ones, for administrators.
func (s *service) ListAll(ctx context.Context) ([]records.Idea, error) {
	var all []records.Idea
	err := s.ideas.View(ctx, func(doc *records.IdeasDocument) error {
		all = make([]records.Idea, 0, len(doc.Ideas))
		for i := range doc.Ideas {
			all = append(all, doc.Ideas[i].Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// SearchByTitle filters the full ledger by case-insensitive substring match
// on the title. An empty query matches everything.
func (s *service) SearchByTitle(ctx context.Context, query string) (*SearchResult, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	matched := all
	if needle != "" {
		matched = filterIdeas(all, func(i records.Idea) bool {
			return strings.Contains(strings.ToLower(i.Title), needle)
		})
	}
	return &SearchResult{Ideas: matched, Query: query, TotalFound: len(matched)}, nil
}

func (s *service) Vote(ctx context.Context, ideaID, userID int64, direction enums.VoteDirection) (*VoteResult, error) {
	if !direction.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vote must be 'for' or 'against'")
	}

	var result VoteResult
	err := s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		idea := doc.FindByID(ideaID)
		if idea == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		if idea.IsHidden {
			return pkgerrors.New(pkgerrors.CodeConflict, "idea is hidden")
		}
		if idea.HasVoted(userID) {
			return pkgerrors.New(pkgerrors.CodeConflict, "user has already voted on this idea")
		}
		switch direction {
		case enums.VoteFor:
			idea.VotesFor++
		case enums.VoteAgainst:
			idea.VotesAgainst++
		}
		idea.VotedUsers = append(idea.VotedUsers, userID)
		result = VoteResult{VotesFor: idea.VotesFor, VotesAgainst: idea.VotesAgainst}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) AddComment(ctx context.Context, ideaID, userID int64, text string) (int64, error) {
	var commentID int64
	err := s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		idea := doc.FindByID(ideaID)
		if idea == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		doc.LastCommentID++
		commentID = doc.LastCommentID
		idea.Comments = append(idea.Comments, records.Comment{
			ID:        commentID,
			UserID:    userID,
			Text:      text,
			CreatedAt: s.now().UTC(),
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return commentID, nil
}

func (s *service) DeleteComment(ctx context.Context, ideaID, commentID int64) error {
	return s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		idea := doc.FindByID(ideaID)
		if idea == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		for i := range idea.Comments {
			if idea.Comments[i].ID == commentID {
				idea.Comments = append(idea.Comments[:i], idea.Comments[i+1:]...)
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "comment not found")
	})
}

func (s *service) Approve(ctx context.Context, ideaID int64) error {
	return s.setFlag(ctx, ideaID, func(idea *records.Idea) { idea.IsApproved = true })
}

func (s *service) Hide(ctx context.Context, ideaID int64) error {
	return s.setFlag(ctx, ideaID, func(idea *records.Idea) { idea.IsHidden = true })
}

func (s *service) Unhide(ctx context.Context, ideaID int64) error {
	return s.setFlag(ctx, ideaID, func(idea *records.Idea) { idea.IsHidden = false })
}

// setFlag applies an idempotent curation toggle inside one transaction.
func (s *service) setFlag(ctx context.Context, ideaID int64, mutate func(*records.Idea)) error {
	return s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		idea := doc.FindByID(ideaID)
		if idea == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "idea not found")
		}
		mutate(idea)
		return nil
	})
}

// DeleteByAuthor removes every idea submitted by the user and reports how
// many were dropped. Account deletion calls this as its cascade step.
func (s *service) DeleteByAuthor(ctx context.Context, userID int64) (int, error) {
	removed := 0
	err := s.ideas.Update(ctx, func(doc *records.IdeasDocument) error {
		kept := doc.Ideas[:0]
		for i := range doc.Ideas {
			if doc.Ideas[i].AuthorID == userID {
				removed++
				continue
			}
			kept = append(kept, doc.Ideas[i])
		}
		doc.Ideas = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func filterIdeas(in []records.Idea, keep func(records.Idea) bool) []records.Idea {
	out := make([]records.Idea, 0, len(in))
	for _, idea := range in {
		if keep(idea) {
			out = append(out, idea)
		}
	}
	return out
}

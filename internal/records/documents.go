package records

import (
	"time"

	"github.com/ideabank/ideabank-backend/pkg/enums"
)

// Document names used for locking, logging, and metrics labels.
const (
	UsersDocumentName  = "users"
	IdeasDocumentName  = "ideas"
	ConfigDocumentName = "app_config"
)

// User is one account record. Password always holds the argon2id digest;
// PlainPassword is present only while the account still carries a temporary
// password the operator may hand out, and is dropped on first login.
type User struct {
	ID                       int64      `json:"id"`
	Username                 string     `json:"username"`
	Password                 string     `json:"password"`
	PlainPassword            string     `json:"plain_password,omitempty"`
	IsTempPassword           bool       `json:"is_temp_password,omitempty"`
	Role                     enums.Role `json:"role"`
	IsActive                 bool       `json:"is_active"`
	FullName                 string     `json:"full_name"`
	HasCompletedIntroduction bool       `json:"has_completed_introduction"`
	NeedsPasswordChange      bool       `json:"needs_password_change"`
	CreatedAt                time.Time  `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == enums.RoleAdmin
}

// UsersDocument is the full on-disk shape of the users document.
type UsersDocument struct {
	Users      []User `json:"users"`
	LastUserID int64  `json:"last_user_id"`
}

// FindByID returns a pointer into the document's user slice, valid only
// while the document lock is held.
func (d *UsersDocument) FindByID(id int64) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *UsersDocument) FindByUsername(username string) *User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// Comment is one comment on an idea. Comment IDs are allocated from a
// single counter shared across all ideas in the document.
type Comment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Idea is one submitted idea with its votes and comments inlined.
type Idea struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	FullDescription  string    `json:"full_description"`
	ExpectedEffect   string    `json:"expected_effect"`
	AuthorID         int64     `json:"author_id"`
	Category         string    `json:"category"`
	IsHidden         bool      `json:"is_hidden"`
	IsApproved       bool      `json:"is_approved"`
	VotesFor         int       `json:"votes_for"`
	VotesAgainst     int       `json:"votes_against"`
	VotedUsers       []int64   `json:"voted_users"`
	CreatedAt        time.Time `json:"created_at"`
	Comments         []Comment `json:"comments"`
}

// Clone returns a copy whose vote and comment slices no longer alias the
// document's backing arrays, so it stays stable after later transactions
// compact or rewrite the originals.
func (i *Idea) Clone() Idea {
	copied := *i
	copied.VotedUsers = append([]int64(nil), i.VotedUsers...)
	copied.Comments = append([]Comment(nil), i.Comments...)
	return copied
}

// HasVoted reports whether the user already cast a vote on this idea,
// in either direction.
func (i *Idea) HasVoted(userID int64) bool {
	for _, id := range i.VotedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// IdeasDocument is the full on-disk shape of the ideas document.
type IdeasDocument struct {
	Ideas         []Idea `json:"ideas"`
	LastIdeaID    int64  `json:"last_idea_id"`
	LastCommentID int64  `json:"last_comment_id"`
}

func (d *IdeasDocument) FindByID(id int64) *Idea {
	for i := range d.Ideas {
		if d.Ideas[i].ID == id {
			return &d.Ideas[i]
		}
	}
	return nil
}

// CountByCategory returns how many ideas currently carry the category.
func (d *IdeasDocument) CountByCategory(category string) int {
	count := 0
	for i := range d.Ideas {
		if d.Ideas[i].Category == category {
			count++
		}
	}
	return count
}

// Settings holds application-wide toggles stored alongside the category
// registry.
type Settings struct {
	DefaultCommentsEnabled bool `json:"default_comments_enabled"`
	ItemsPerPage           int  `json:"items_per_page"`
}

// ConfigDocument is the full on-disk shape of the app_config document.
type ConfigDocument struct {
	Categories []string `json:"categories"`
	Settings   Settings `json:"settings"`
}

func (d *ConfigDocument) HasCategory(name string) bool {
	for _, c := range d.Categories {
		if c == name {
			return true
		}
	}
	return false
}

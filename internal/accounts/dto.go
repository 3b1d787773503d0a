package accounts

import (
	"time"

	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/enums"
)

// Account is a user record with every credential field stripped, safe to
// hand to listings.
type Account struct {
	ID                       int64      `json:"id"`
	Username                 string     `json:"username"`
	Role                     enums.Role `json:"role"`
	IsActive                 bool       `json:"is_active"`
	FullName                 string     `json:"full_name"`
	HasCompletedIntroduction bool       `json:"has_completed_introduction"`
	NeedsPasswordChange      bool       `json:"needs_password_change"`
	CreatedAt                time.Time  `json:"created_at"`
}

func accountFromUser(u records.User) Account {
	return Account{
		ID:                       u.ID,
		Username:                 u.Username,
		Role:                     u.Role,
		IsActive:                 u.IsActive,
		FullName:                 u.FullName,
		HasCompletedIntroduction: u.HasCompletedIntroduction,
		NeedsPasswordChange:      u.NeedsPasswordChange,
		CreatedAt:                u.CreatedAt,
	}
}

// GeneratedAccount is one account produced by bulk generation. Password is
// populated only on the with-passwords path.
type GeneratedAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// GenerateResult reports a bulk generation run.
type GenerateResult struct {
	Accounts     []GeneratedAccount `json:"users"`
	TotalCreated int                `json:"total_created"`
	TotalFailed  int                `json:"total_failed"`
}

// TempPasswordAccount is a user still carrying a handed-out plaintext
// password.
type TempPasswordAccount struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

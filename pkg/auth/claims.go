package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/ideabank/ideabank-backend/pkg/enums"
)

// Identity is the caller snapshot captured at login time. It is minted into
// the access token and threaded through each request explicitly; it is not
// re-synchronized when the underlying account record changes.
type Identity struct {
	UserID                   int64      `json:"user_id"`
	Username                 string     `json:"username"`
	Role                     enums.Role `json:"role"`
	FullName                 string     `json:"full_name,omitempty"`
	HasCompletedIntroduction bool       `json:"has_completed_introduction"`
	NeedsPasswordChange      bool       `json:"needs_password_change"`
}

// IsAdmin reports whether the identity carries administrator privileges.
func (i Identity) IsAdmin() bool {
	return i.Role == enums.RoleAdmin
}

// NeedsIntroduction reports whether the user still has to supply a full
// name. Administrators skip the introduction step.
func (i Identity) NeedsIntroduction() bool {
	return !i.HasCompletedIntroduction && !i.IsAdmin()
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Identity Identity
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Identity
	jwt.RegisteredClaims
}

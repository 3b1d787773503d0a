package enums

import "fmt"

// VoteDirection is the side a user takes on an idea. Votes are permanent;
// there is no retraction direction.
type VoteDirection string

const (
	VoteFor     VoteDirection = "for"
	VoteAgainst VoteDirection = "against"
)

// String implements fmt.Stringer.
func (v VoteDirection) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VoteDirection.
func (v VoteDirection) IsValid() bool {
	return v == VoteFor || v == VoteAgainst
}

// ParseVoteDirection converts raw input into a VoteDirection.
func ParseVoteDirection(value string) (VoteDirection, error) {
	switch VoteDirection(value) {
	case VoteFor:
		return VoteFor, nil
	case VoteAgainst:
		return VoteAgainst, nil
	}
	return "", fmt.Errorf("invalid vote direction %q", value)
}

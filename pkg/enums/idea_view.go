package enums

import "fmt"

// IdeaView selects the ordering and filtering applied to idea listings.
type IdeaView string

const (
	// IdeaViewNew orders by creation time, newest first.
	IdeaViewNew IdeaView = "new"
	// IdeaViewPopular orders by votes-for minus votes-against, highest first.
	IdeaViewPopular IdeaView = "popular"
	// IdeaViewApproved keeps only approved ideas.
	IdeaViewApproved IdeaView = "approved"
	// IdeaViewOpen keeps only ideas not yet approved.
	IdeaViewOpen IdeaView = "open"
)

var validIdeaViews = []IdeaView{
	IdeaViewNew,
	IdeaViewPopular,
	IdeaViewApproved,
	IdeaViewOpen,
}

// String implements fmt.Stringer.
func (v IdeaView) String() string {
	return string(v)
}

// IsValid reports whether the value is a known IdeaView.
func (v IdeaView) IsValid() bool {
	for _, candidate := range validIdeaViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseIdeaView converts raw input into an IdeaView, defaulting to open.
func ParseIdeaView(value string) (IdeaView, error) {
	if value == "" {
		return IdeaViewOpen, nil
	}
	for _, candidate := range validIdeaViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid idea view %q", value)
}

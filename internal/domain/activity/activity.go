package activity

import (
	"errors"
	"strings"
	"time"
)

const AggregateType = "Activity"

// MaxDescriptionLength matches the width of the description column.
const MaxDescriptionLength = 500

var (
	ErrInvalidType   = errors.New("unknown activity type")
	ErrInvalidUserID = errors.New("user id is required")
)

// Type classifies an activity entry.
type Type string

const (
	TypeLogin              Type = "LOGIN"
	TypePitchGenerated     Type = "PITCH_GENERATED"
	TypeConnectionRequest  Type = "CONNECTION_REQUEST"
	TypeConnectionAccepted Type = "CONNECTION_ACCEPTED"
	TypeConnectionRejected Type = "CONNECTION_REJECTED"
	TypeProfileUpdated     Type = "PROFILE_UPDATED"
	TypeMilestoneCompleted Type = "MILESTONE_COMPLETED"
	TypeInvestorViewed     Type = "INVESTOR_VIEWED"
	TypeStartupViewed      Type = "STARTUP_VIEWED"
)

var knownTypes = map[Type]struct{}{
	TypeLogin:              {},
	TypePitchGenerated:     {},
	TypeConnectionRequest:  {},
	TypeConnectionAccepted: {},
	TypeConnectionRejected: {},
	TypeProfileUpdated:     {},
	TypeMilestoneCompleted: {},
	TypeInvestorViewed:     {},
	TypeStartupViewed:      {},
}

// ParseType normalizes s and returns the matching Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownTypes[t]; !ok {
		return "", ErrInvalidType
	}
	return t, nil
}

// Activity is one append-only entry of a user's activity log.
type Activity struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks an entry before it is appended. Descriptions longer than
// MaxDescriptionLength are truncated.
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.UserID) == "" {
		return ErrInvalidUserID
	}
	t, err := ParseType(string(a.Type))
	if err != nil {
		return err
	}
	a.Type = t
	if r := []rune(a.Description); len(r) > MaxDescriptionLength {
		a.Description = string(r[:MaxDescriptionLength])
	}
	return nil
}

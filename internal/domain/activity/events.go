package activity

import "time"

const (
	EventActivityLogged = "ActivityLogged"
)

// ActivityLogged is published by activity producers and projected into the
// activity log.
type ActivityLogged struct {
	ActivityID  string    `json:"activity_id"`
	UserID      string    `json:"user_id"`
	Type        Type      `json:"type"`
	Description string    `json:"description"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToActivity converts the event payload to the stored entry.
func (e ActivityLogged) ToActivity() Activity {
	return Activity{
		ID:          e.ActivityID,
		UserID:      e.UserID,
		Type:        e.Type,
		Description: e.Description,
		Metadata:    e.Metadata,
		CreatedAt:   e.CreatedAt,
	}
}

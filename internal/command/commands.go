package command

// Activity Commands
type LogActivity struct {
	UserID      string `json:"-"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Metadata    string `json:"metadata"`
}

// Dashboard Commands
type RefreshDashboard struct {
	UserID string `json:"-"`
	Role   string `json:"-"`
}

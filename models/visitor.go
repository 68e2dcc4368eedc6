package models

// Visitor status values.
const (
	VisitorStatusActive   = "active"
	VisitorStatusInactive = "inactive"
)

// NDA status values. Transitions are monotonic: none -> requested -> signed.
const (
	NDAStatusNone      = "none"
	NDAStatusRequested = "requested"
	NDAStatusSigned    = "signed"
)

// DownloadCategories is the fixed set of trackable document categories.
var DownloadCategories = []string{"term-sheet", "teaser", "financial-model", "nda"}

// Visitor is a recipient of a tracked link, correlated by opaque token.
type Visitor struct {
	ID          string         `json:"id"`
	Token       string         `json:"token"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Company     string         `json:"company"`
	Status      string         `json:"status"`
	AccessCount int            `json:"access_count"`
	FirstAccess string         `json:"first_access,omitempty"`
	LastAccess  string         `json:"last_access,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
	TotalTime   int            `json:"total_time"`
	Downloads   map[string]int `json:"downloads,omitempty"`
	NDAStatus   string         `json:"nda_status"`
	Visits      int            `json:"visits"`
}

// NDARecord is one entry in a visitor's NDA history.
type NDARecord struct {
	Timestamp string `json:"timestamp"`
	Signed    bool   `json:"signed"`
}

package models

// Session is one page visit from entry to exit or tab-hide. SessionEnd stays
// empty until the session is finalized.
type Session struct {
	ID                  string `json:"id"`
	VisitorToken        string `json:"visitor_token"`
	VisitorEmail        string `json:"visitor_email,omitempty"`
	SessionStart        string `json:"session_start"`
	SessionEnd          string `json:"session_end,omitempty"`
	DurationSeconds     int    `json:"duration_seconds"`
	PageViews           int    `json:"page_views"`
	DocumentsDownloaded int    `json:"documents_downloaded"`
	NDAInitiated        bool   `json:"nda_initiated"`
	MaxScrollPercentage int    `json:"max_scroll_percentage"`
	CreatedAt           string `json:"created_at"`
}

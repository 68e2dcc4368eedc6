package models

// Event type values emitted by the site trackers. The recorder accepts any
// non-empty type; these are the ones with dedicated handling.
const (
	EventPageView   = "page_view"
	EventPageVisit  = "page_visit"
	EventDownload   = "download"
	EventNDARequest = "nda_request"
	EventSessionEnd = "session_end"
	EventClick      = "click"
	EventHeartbeat  = "heartbeat"
)

// AnalyticsEvent is a single tracked event. Events are immutable once
// recorded and are appended to an ordered log; insertion order is the
// chronological order used by the aggregator.
type AnalyticsEvent struct {
	ID           string         `json:"id"`
	VisitorToken string         `json:"visitor_token"`
	VisitorEmail string         `json:"visitor_email,omitempty"`
	EventType    string         `json:"event_type"`
	EventData    map[string]any `json:"event_data,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	PageURL      string         `json:"page_url,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	Timestamp    string         `json:"timestamp"`
	CreatedAt    string         `json:"created_at"`
}

// RecordEventRequest is the tracker payload posted to the analytics endpoint.
type RecordEventRequest struct {
	EventType    string         `json:"eventType"`
	VisitorToken string         `json:"visitorToken"`
	VisitorEmail string         `json:"visitor_email"`
	Data         map[string]any `json:"data"`
	Timestamp    string         `json:"timestamp"`
}

package models

// Summary is the full aggregate view served to the admin dashboard.
// Every field is recomputed from the event store on each read.
type Summary struct {
	Summary      SummaryTotals  `json:"summary"`
	Downloads    []DownloadStat `json:"downloads"`
	Visitors     []VisitorStats `json:"visitors"`
	RecentEvents []RecentEvent  `json:"recentEvents"`
	DailyStats   []DailyStat    `json:"dailyStats"`
	Stats        ExtendedTotals `json:"stats"`
}

type SummaryTotals struct {
	TotalVisitors    int    `json:"totalVisitors"`
	TotalDownloads   int    `json:"totalDownloads"`
	TotalNDARequests int    `json:"totalNDARequests"`
	AvgTimeOnSite    int    `json:"avgTimeOnSite"`
	LastUpdated      string `json:"lastUpdated"`
}

// DownloadStat is one row of the per-category download breakdown.
type DownloadStat struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// VisitorStats is the dashboard projection of a visitor record.
type VisitorStats struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Company    string         `json:"company"`
	LastAccess string         `json:"lastAccess"`
	Downloads  map[string]int `json:"downloads"`
	NDAStatus  string         `json:"ndaStatus"`
	TotalTime  int            `json:"totalTime"`
	Visits     int            `json:"visits"`
}

// RecentEvent is a reduced, identity-masked view of a recorded event.
type RecentEvent struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	File      string `json:"file"`
	Visitor   string `json:"visitor"`
}

// DailyStat is one day of the trailing-week rollup.
type DailyStat struct {
	Date        string `json:"date"`
	Visitors    int    `json:"visitors"`
	Downloads   int    `json:"downloads"`
	NDARequests int    `json:"ndaRequests"`
}

type ExtendedTotals struct {
	TotalEvents       int            `json:"totalEvents"`
	UniqueVisitors    int            `json:"uniqueVisitors"`
	DownloadsByType   map[string]int `json:"downloadsByType"`
	NDAConversionRate int            `json:"ndaConversionRate"`
}

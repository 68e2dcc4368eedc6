package store

import "projectzurich/api/models"

// Hardcoded demo records, always merged ahead of runtime-created records in
// table reads so the dashboard has something to show on a fresh instance.
// They never feed the aggregator and writes against them are not persisted.

func demoVisitors() []models.Visitor {
	return []models.Visitor{
		{
			ID:          "demo_1",
			Token:       "zrch_demo_001",
			Email:       "juan.garcia@pension-fund.com",
			Name:        "Juan García (Demo)",
			Company:     "Pension Fund España",
			Status:      models.VisitorStatusActive,
			AccessCount: 3,
			FirstAccess: "2024-09-18T10:30:00Z",
			LastAccess:  "2024-09-18T14:30:00Z",
			CreatedAt:   "2024-09-18T10:30:00Z",
		},
		{
			ID:          "demo_2",
			Token:       "zrch_demo_002",
			Email:       "maria.lopez@family-office.es",
			Name:        "María López (Demo)",
			Company:     "Family Office Madrid",
			Status:      models.VisitorStatusActive,
			AccessCount: 2,
			FirstAccess: "2024-09-18T09:15:00Z",
			LastAccess:  "2024-09-18T11:45:00Z",
			CreatedAt:   "2024-09-18T09:15:00Z",
		},
	}
}

func demoEvents() []models.AnalyticsEvent {
	return []models.AnalyticsEvent{
		{
			ID:           "demo_event_1",
			VisitorToken: "zrch_demo_001",
			VisitorEmail: "juan.garcia@pension-fund.com",
			EventType:    models.EventPageView,
			EventData:    map[string]any{"page": "/index.html"},
			PageURL:      "https://project-zurich-alter5.vercel.app/index.html",
			Timestamp:    "2024-09-18T10:30:00Z",
		},
		{
			ID:           "demo_event_2",
			VisitorToken: "zrch_demo_001",
			VisitorEmail: "juan.garcia@pension-fund.com",
			EventType:    models.EventDownload,
			EventData:    map[string]any{"type": "term-sheet", "file": "Project-ZURICH-TermSheet.docx"},
			PageURL:      "https://project-zurich-alter5.vercel.app/index.html",
			Timestamp:    "2024-09-18T10:35:00Z",
		},
		{
			ID:           "demo_event_3",
			VisitorToken: "zrch_demo_002",
			VisitorEmail: "maria.lopez@family-office.es",
			EventType:    models.EventPageView,
			EventData:    map[string]any{"page": "/index.html"},
			PageURL:      "https://project-zurich-alter5.vercel.app/index.html",
			Timestamp:    "2024-09-18T09:15:00Z",
		},
		{
			ID:           "demo_event_4",
			VisitorToken: "zrch_demo_002",
			VisitorEmail: "maria.lopez@family-office.es",
			EventType:    models.EventNDARequest,
			EventData:    map[string]any{"action": "initiated"},
			PageURL:      "https://project-zurich-alter5.vercel.app/index.html",
			Timestamp:    "2024-09-18T09:20:00Z",
		},
	}
}

func demoSessions() []models.Session {
	return []models.Session{
		{
			ID:                  "demo_session_1",
			VisitorToken:        "zrch_demo_001",
			VisitorEmail:        "juan.garcia@pension-fund.com",
			SessionStart:        "2024-09-18T10:30:00Z",
			SessionEnd:          "2024-09-18T10:45:00Z",
			DurationSeconds:     900,
			PageViews:           3,
			DocumentsDownloaded: 2,
			NDAInitiated:        true,
			MaxScrollPercentage: 85,
		},
		{
			ID:                  "demo_session_2",
			VisitorToken:        "zrch_demo_002",
			VisitorEmail:        "maria.lopez@family-office.es",
			SessionStart:        "2024-09-18T09:15:00Z",
			SessionEnd:          "2024-09-18T09:25:00Z",
			DurationSeconds:     600,
			PageViews:           2,
			DocumentsDownloaded: 0,
			NDAInitiated:        true,
			MaxScrollPercentage: 72,
		},
	}
}

package store

import (
	"math"
	"time"

	"projectzurich/api/models"
	"projectzurich/api/utils"
)

const recentEventLimit = 10

// Summarize recomputes the full dashboard view from current state. It never
// mutates the store; cost is linear in the number of recorded events, which
// is acceptable at this scale.
func (s *Store) Summarize() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalVisitors := len(s.visitors)

	totalDownloads := 0
	for _, count := range s.downloads {
		totalDownloads += count
	}

	totalNDARequests := len(s.ndaRequests)

	avgTime := 0
	if totalVisitors > 0 {
		totalTime := 0
		for _, visitor := range s.visitors {
			totalTime += visitor.TotalTime
		}
		avgTime = int(math.Round(float64(totalTime) / float64(totalVisitors)))
	}

	conversionRate := 0
	if totalVisitors > 0 {
		conversionRate = int(math.Round(float64(totalNDARequests) / float64(totalVisitors) * 100))
	}

	downloadsByType := make(map[string]int, len(s.downloads))
	for fileType, count := range s.downloads {
		downloadsByType[fileType] = count
	}

	return models.Summary{
		Summary: models.SummaryTotals{
			TotalVisitors:    totalVisitors,
			TotalDownloads:   totalDownloads,
			TotalNDARequests: totalNDARequests,
			AvgTimeOnSite:    avgTime,
			LastUpdated:      time.Now().Format(time.RFC3339),
		},
		Downloads:    s.downloadBreakdown(totalDownloads),
		Visitors:     s.visitorStats(),
		RecentEvents: s.recentEvents(),
		DailyStats:   s.dailyStats(time.Now()),
		Stats: models.ExtendedTotals{
			TotalEvents:       len(s.events),
			UniqueVisitors:    totalVisitors,
			DownloadsByType:   downloadsByType,
			NDAConversionRate: conversionRate,
		},
	}
}

// Section returns one named section of the summary, for GET ?type=X reads.
func (s *Store) Section(name string) (any, bool) {
	summary := s.Summarize()
	switch name {
	case "summary":
		return summary.Summary, true
	case "downloads":
		return summary.Downloads, true
	case "visitors":
		return summary.Visitors, true
	case "recentEvents":
		return summary.RecentEvents, true
	case "dailyStats":
		return summary.DailyStats, true
	case "stats":
		return summary.Stats, true
	default:
		return nil, false
	}
}

// downloadBreakdown reports the four fixed categories in their fixed order,
// including zero rows. Callers hold at least the read lock.
func (s *Store) downloadBreakdown(totalDownloads int) []models.DownloadStat {
	breakdown := make([]models.DownloadStat, 0, len(models.DownloadCategories))
	for _, category := range models.DownloadCategories {
		count := s.downloads[category]
		percentage := 0
		if totalDownloads > 0 {
			percentage = int(math.Round(float64(count) / float64(totalDownloads) * 100))
		}
		breakdown = append(breakdown, models.DownloadStat{
			Type:       category,
			Count:      count,
			Percentage: percentage,
		})
	}
	return breakdown
}

func (s *Store) visitorStats() []models.VisitorStats {
	stats := make([]models.VisitorStats, 0, len(s.visitors))
	for _, visitor := range s.visitors {
		downloads := make(map[string]int, len(visitor.Downloads))
		for fileType, count := range visitor.Downloads {
			downloads[fileType] = count
		}
		id := visitor.Token
		if id == "" {
			id = visitor.ID
		}
		stats = append(stats, models.VisitorStats{
			ID:         id,
			Email:      visitor.Email,
			Name:       visitor.Name,
			Company:    visitor.Company,
			LastAccess: visitor.LastAccess,
			Downloads:  downloads,
			NDAStatus:  visitor.NDAStatus,
			TotalTime:  visitor.TotalTime,
			Visits:     visitor.Visits,
		})
	}
	return stats
}

// recentEvents reduces the newest events to the dashboard feed, newest
// first, with the visitor identity masked.
func (s *Store) recentEvents() []models.RecentEvent {
	start := len(s.events) - recentEventLimit
	if start < 0 {
		start = 0
	}
	recent := make([]models.RecentEvent, 0, len(s.events)-start)
	for i := len(s.events) - 1; i >= start; i-- {
		event := s.events[i]
		file := stringFrom(event.EventData, "file_type")
		if file == "" {
			file = stringFrom(event.EventData, "type")
		}
		if file == "" {
			file = "unknown"
		}
		recent = append(recent, models.RecentEvent{
			Timestamp: event.Timestamp,
			Type:      event.EventType,
			File:      file,
			Visitor:   utils.MaskVisitor(event.VisitorToken),
		})
	}
	return recent
}

// dailyStats rolls events up into the trailing 7 local calendar days, oldest
// first. Every day is present even with zero activity; boundaries are local
// midnight to midnight.
func (s *Store) dailyStats(now time.Time) []models.DailyStat {
	stats := make([]models.DailyStat, 0, 7)

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		visitorsSeen := make(map[string]struct{})
		downloads := 0
		ndaRequests := 0

		for _, event := range s.events {
			ts, err := time.Parse(time.RFC3339, event.Timestamp)
			if err != nil {
				continue
			}
			ts = ts.Local()
			if ts.Before(dayStart) || !ts.Before(dayEnd) {
				continue
			}
			visitorsSeen[event.VisitorToken] = struct{}{}
			switch event.EventType {
			case models.EventDownload:
				downloads++
			case models.EventNDARequest:
				ndaRequests++
			}
		}

		stats = append(stats, models.DailyStat{
			Date:        dayStart.Format("2006-01-02"),
			Visitors:    len(visitorsSeen),
			Downloads:   downloads,
			NDARequests: ndaRequests,
		})
	}

	return stats
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectzurich/api/models"
)

func TestSummarizeEmptyStore(t *testing.T) {
	s := New()
	summary := s.Summarize()

	assert.Equal(t, 0, summary.Summary.TotalVisitors)
	assert.Equal(t, 0, summary.Summary.TotalDownloads)
	assert.Equal(t, 0, summary.Summary.TotalNDARequests)
	assert.Equal(t, 0, summary.Summary.AvgTimeOnSite)
	assert.Equal(t, 0, summary.Stats.NDAConversionRate)

	// Every fixed category is present with zero count and zero percentage.
	require.Len(t, summary.Downloads, len(models.DownloadCategories))
	for _, stat := range summary.Downloads {
		assert.Equal(t, 0, stat.Count)
		assert.Equal(t, 0, stat.Percentage)
	}

	assert.Empty(t, summary.RecentEvents)
	assert.Len(t, summary.DailyStats, 7)
}

func TestDownloadBreakdown(t *testing.T) {
	t.Run("TwoTeaserDownloadsOneVisitor", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, "")
		require.NoError(t, err)
		_, err = s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, "")
		require.NoError(t, err)

		summary := s.Summarize()
		assert.Equal(t, 1, summary.Summary.TotalVisitors)
		assert.Equal(t, 2, summary.Summary.TotalDownloads)

		byType := make(map[string]models.DownloadStat)
		for _, stat := range summary.Downloads {
			byType[stat.Type] = stat
		}
		assert.Equal(t, 2, byType["teaser"].Count)
		assert.Equal(t, 100, byType["teaser"].Percentage)
		assert.Equal(t, 0, byType["term-sheet"].Count)
		assert.Equal(t, 0, byType["term-sheet"].Percentage)
		assert.Equal(t, 0, byType["financial-model"].Count)
		assert.Equal(t, 0, byType["nda"].Count)
	})

	t.Run("PercentagesRoundAndBound", func(t *testing.T) {
		s := New()
		for i := 0; i < 2; i++ {
			_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, "")
			require.NoError(t, err)
		}
		_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "nda"}, "")
		require.NoError(t, err)

		summary := s.Summarize()
		sum := 0
		for _, stat := range summary.Downloads {
			sum += stat.Percentage
		}
		// round(2/3*100)=67, round(1/3*100)=33
		assert.LessOrEqual(t, sum, 100)
		for _, stat := range summary.Downloads {
			switch stat.Type {
			case "teaser":
				assert.Equal(t, 67, stat.Percentage)
			case "nda":
				assert.Equal(t, 33, stat.Percentage)
			}
		}
	})
}

func TestNDAConversionRate(t *testing.T) {
	s := New()
	_, err := s.Record("v1", models.EventNDARequest, map[string]any{"signed": false}, "")
	require.NoError(t, err)
	_, err = s.Record("v2", models.EventPageView, nil, "")
	require.NoError(t, err)
	_, err = s.Record("v3", models.EventPageView, nil, "")
	require.NoError(t, err)

	summary := s.Summarize()
	assert.Equal(t, 3, summary.Summary.TotalVisitors)
	assert.Equal(t, 1, summary.Summary.TotalNDARequests)
	// round(1/3*100)
	assert.Equal(t, 33, summary.Stats.NDAConversionRate)
}

func TestAvgTimeOnSite(t *testing.T) {
	s := New()
	_, err := s.Record("v1", models.EventSessionEnd, map[string]any{"total_time": float64(100)}, "")
	require.NoError(t, err)
	_, err = s.Record("v2", models.EventSessionEnd, map[string]any{"total_time": float64(101)}, "")
	require.NoError(t, err)

	summary := s.Summarize()
	// mean of 100 and 101 rounds to 101
	assert.Equal(t, 101, summary.Summary.AvgTimeOnSite)
}

func TestDailyStats(t *testing.T) {
	s := New()

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, now.Format(time.RFC3339))
	require.NoError(t, err)
	_, err = s.Record("v2", models.EventNDARequest, nil, yesterday.Format(time.RFC3339))
	require.NoError(t, err)
	// Outside the trailing window, must not appear anywhere.
	_, err = s.Record("v3", models.EventDownload, map[string]any{"file_type": "nda"}, now.AddDate(0, 0, -10).Format(time.RFC3339))
	require.NoError(t, err)

	summary := s.Summarize()
	require.Len(t, summary.DailyStats, 7)

	// Oldest first, consecutive days, no gaps.
	for i, day := range summary.DailyStats {
		expected := now.AddDate(0, 0, i-6)
		assert.Equal(t, expected.Format("2006-01-02"), day.Date)
	}

	today := summary.DailyStats[6]
	assert.Equal(t, 1, today.Visitors)
	assert.Equal(t, 1, today.Downloads)
	assert.Equal(t, 0, today.NDARequests)

	prior := summary.DailyStats[5]
	assert.Equal(t, 1, prior.Visitors)
	assert.Equal(t, 0, prior.Downloads)
	assert.Equal(t, 1, prior.NDARequests)

	windowDownloads := 0
	for _, day := range summary.DailyStats {
		windowDownloads += day.Downloads
	}
	assert.Equal(t, 1, windowDownloads)
}

func TestRecentEvents(t *testing.T) {
	s := New()
	for i := 0; i < 12; i++ {
		fileType := "teaser"
		if i == 11 {
			fileType = "term-sheet"
		}
		_, err := s.Record("zrch_abcdef", models.EventDownload, map[string]any{"file_type": fileType}, "")
		require.NoError(t, err)
	}

	summary := s.Summarize()
	require.Len(t, summary.RecentEvents, 10)

	// Newest first: the last recorded event leads.
	assert.Equal(t, "term-sheet", summary.RecentEvents[0].File)
	assert.Equal(t, models.EventDownload, summary.RecentEvents[0].Type)

	// Visitor identity is masked, never the raw token.
	assert.Equal(t, "visitor_abcdef@***.com", summary.RecentEvents[0].Visitor)
}

func TestSection(t *testing.T) {
	s := New()
	_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, "")
	require.NoError(t, err)

	for _, name := range []string{"summary", "downloads", "visitors", "recentEvents", "dailyStats", "stats"} {
		section, ok := s.Section(name)
		assert.True(t, ok, name)
		assert.NotNil(t, section, name)
	}

	_, ok := s.Section("nope")
	assert.False(t, ok)
}

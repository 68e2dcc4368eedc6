package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectzurich/api/models"
)

func TestRecord(t *testing.T) {
	t.Run("RejectsMissingToken", func(t *testing.T) {
		s := New()
		_, err := s.Record("", models.EventPageView, nil, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, 0, s.TotalEvents())
	})

	t.Run("RejectsMissingEventType", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", "", nil, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, 0, s.TotalEvents())
	})

	t.Run("CreatesVisitorOnFirstEvent", func(t *testing.T) {
		s := New()
		eventID, err := s.Record("zrch_abcdef123456", models.EventPageView, nil, "")
		require.NoError(t, err)
		assert.NotEmpty(t, eventID)

		summary := s.Summarize()
		require.Len(t, summary.Visitors, 1)
		assert.Equal(t, "zrch_abc@unknown-visitor.com", summary.Visitors[0].Email)
		assert.Equal(t, 1, summary.Visitors[0].Visits)
	})

	t.Run("DownloadTallyMatchesEventCount", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "teaser"}, "")
		require.NoError(t, err)
		_, err = s.Record("v1", models.EventDownload, map[string]any{"file_type": "term-sheet"}, "")
		require.NoError(t, err)
		_, err = s.Record("v2", models.EventDownload, map[string]any{"type": "teaser"}, "")
		require.NoError(t, err)
		_, err = s.Record("v2", models.EventPageView, nil, "")
		require.NoError(t, err)

		summary := s.Summarize()
		tallySum := 0
		for _, count := range summary.Stats.DownloadsByType {
			tallySum += count
		}
		assert.Equal(t, 3, tallySum)
		assert.Equal(t, 3, summary.Summary.TotalDownloads)
	})

	t.Run("SessionEndAccumulatesTime", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", models.EventSessionEnd, map[string]any{"total_time": float64(120)}, "")
		require.NoError(t, err)
		_, err = s.Record("v1", models.EventSessionEnd, map[string]any{"total_time": float64(30)}, "")
		require.NoError(t, err)

		summary := s.Summarize()
		require.Len(t, summary.Visitors, 1)
		assert.Equal(t, 150, summary.Visitors[0].TotalTime)
	})

	t.Run("SessionEndIgnoresNegativeAndMissingTime", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", models.EventSessionEnd, map[string]any{"total_time": float64(-45)}, "")
		require.NoError(t, err)
		_, err = s.Record("v1", models.EventSessionEnd, nil, "")
		require.NoError(t, err)

		summary := s.Summarize()
		require.Len(t, summary.Visitors, 1)
		assert.Equal(t, 0, summary.Visitors[0].TotalTime)
	})

	t.Run("NDAStatusIsMonotonic", func(t *testing.T) {
		s := New()
		_, err := s.Record("v1", models.EventNDARequest, map[string]any{"signed": false}, "")
		require.NoError(t, err)
		summary := s.Summarize()
		assert.Equal(t, models.NDAStatusRequested, summary.Visitors[0].NDAStatus)

		_, err = s.Record("v1", models.EventNDARequest, map[string]any{"signed": true}, "")
		require.NoError(t, err)
		summary = s.Summarize()
		assert.Equal(t, models.NDAStatusSigned, summary.Visitors[0].NDAStatus)

		// A later unsigned request must not regress a signed status.
		_, err = s.Record("v1", models.EventNDARequest, map[string]any{"signed": false}, "")
		require.NoError(t, err)
		summary = s.Summarize()
		assert.Equal(t, models.NDAStatusSigned, summary.Visitors[0].NDAStatus)
	})

	t.Run("LastAccessNeverDecreases", func(t *testing.T) {
		s := New()
		newer := time.Now().Format(time.RFC3339)
		older := time.Now().Add(-time.Hour).Format(time.RFC3339)

		_, err := s.Record("v1", models.EventPageView, nil, newer)
		require.NoError(t, err)
		_, err = s.Record("v1", models.EventClick, nil, older)
		require.NoError(t, err)

		summary := s.Summarize()
		assert.Equal(t, newer, summary.Visitors[0].LastAccess)
	})
}

func TestResolveToken(t *testing.T) {
	t.Run("CreatesPlaceholderOnMiss", func(t *testing.T) {
		s := New()
		visitor, err := s.ResolveToken("zrch_fresh_token")
		require.NoError(t, err)
		assert.Equal(t, "zrch_fre@unknown-visitor.com", visitor.Email)
		assert.Equal(t, 1, visitor.AccessCount)
		assert.Equal(t, models.VisitorStatusActive, visitor.Status)
		assert.NotEmpty(t, visitor.FirstAccess)
	})

	t.Run("EachResolutionIncrementsAccessCount", func(t *testing.T) {
		// Resolution is deliberately not idempotent: N resolutions of the
		// same token add N-1 to the count set at creation.
		s := New()
		first, err := s.ResolveToken("v1")
		require.NoError(t, err)
		require.Equal(t, 1, first.AccessCount)

		const extra = 4
		var last models.Visitor
		for i := 0; i < extra; i++ {
			last, err = s.ResolveToken("v1")
			require.NoError(t, err)
		}
		assert.Equal(t, first.AccessCount+extra, last.AccessCount)
	})

	t.Run("RejectsEmptyToken", func(t *testing.T) {
		s := New()
		_, err := s.ResolveToken("")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestReset(t *testing.T) {
	s := New()
	_, err := s.Record("v1", models.EventDownload, map[string]any{"file_type": "nda"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, s.TotalEvents())

	s.Reset()

	assert.Equal(t, 0, s.TotalEvents())
	summary := s.Summarize()
	assert.Equal(t, 0, summary.Summary.TotalVisitors)
	assert.Equal(t, 0, summary.Summary.TotalDownloads)
}

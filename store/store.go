// Package store holds all mutable state for the lifetime of the serving
// process. State is per-process: nothing is persisted, and when several
// instances serve traffic each one only sees the events it received itself.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"projectzurich/api/models"
)

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store is the in-memory event store. All mutation goes through its methods
// and is serialized by the mutex; reads take snapshots under the read lock.
type Store struct {
	mu sync.RWMutex

	visitors []*models.Visitor
	byToken  map[string]*models.Visitor
	byID     map[string]*models.Visitor

	events      []models.AnalyticsEvent
	downloads   map[string]int
	ndaRequests map[string][]models.NDARecord
	sessions    []models.Session
}

// New returns an empty Store. Constructed once at process start and injected
// into the handlers.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.visitors = nil
	s.byToken = make(map[string]*models.Visitor)
	s.byID = make(map[string]*models.Visitor)
	s.events = nil
	s.downloads = make(map[string]int)
	s.ndaRequests = make(map[string][]models.NDARecord)
	s.sessions = nil
}

// Reset clears all recorded state. Intended for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Record appends a tracked event and updates the derived per-visitor and
// per-category counters. Unknown visitor tokens are not an error: a new
// visitor record is silently created. Returns the generated event id.
func (s *Store) Record(visitorToken, eventType string, data map[string]any, timestamp string) (string, error) {
	if visitorToken == "" {
		return "", fmt.Errorf("%w: visitor token is required", ErrValidation)
	}
	if eventType == "" {
		return "", fmt.Errorf("%w: event type is required", ErrValidation)
	}

	now := time.Now().Format(time.RFC3339)
	if timestamp == "" {
		timestamp = now
	}

	event := models.AnalyticsEvent{
		ID:           uuid.New().String(),
		VisitorToken: visitorToken,
		EventType:    eventType,
		EventData:    data,
		Timestamp:    timestamp,
		CreatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendEvent(event)

	return event.ID, nil
}

// appendEvent adds the event to the log and dispatches the kind-specific
// counter updates. Callers hold the write lock.
func (s *Store) appendEvent(event models.AnalyticsEvent) {
	s.events = append(s.events, event)

	visitor := s.upsertVisitor(event.VisitorToken, event.Timestamp)

	switch event.EventType {
	case models.EventDownload:
		s.applyDownload(visitor, event.EventData)
	case models.EventNDARequest:
		s.applyNDARequest(visitor, event.EventData, event.Timestamp)
	case models.EventPageView, models.EventPageVisit:
		visitor.Visits++
	case models.EventSessionEnd:
		visitor.TotalTime += totalTimeFrom(event.EventData)
	}
}

// upsertVisitor returns the visitor for token, creating a default record on
// first sight, and advances last_access. Callers hold the write lock.
func (s *Store) upsertVisitor(token, timestamp string) *models.Visitor {
	visitor, ok := s.byToken[token]
	if !ok {
		visitor = &models.Visitor{
			ID:          uuid.New().String(),
			Token:       token,
			Email:       SyntheticEmail(token),
			Name:        "Visitante Nuevo",
			Status:      models.VisitorStatusActive,
			FirstAccess: timestamp,
			CreatedAt:   timestamp,
			Downloads:   make(map[string]int),
			NDAStatus:   models.NDAStatusNone,
		}
		s.addVisitor(visitor)
	}
	if visitor.LastAccess == "" || timestamp >= visitor.LastAccess {
		visitor.LastAccess = timestamp
	}
	return visitor
}

// addVisitor appends the record and indexes it. Callers hold the write lock.
func (s *Store) addVisitor(visitor *models.Visitor) {
	s.visitors = append(s.visitors, visitor)
	s.byID[visitor.ID] = visitor
	if visitor.Token != "" {
		if _, exists := s.byToken[visitor.Token]; !exists {
			s.byToken[visitor.Token] = visitor
		}
	}
}

func (s *Store) applyDownload(visitor *models.Visitor, data map[string]any) {
	fileType := stringFrom(data, "file_type")
	if fileType == "" {
		fileType = stringFrom(data, "type")
	}
	if fileType == "" {
		fileType = "unknown"
	}
	s.downloads[fileType]++
	if visitor.Downloads == nil {
		visitor.Downloads = make(map[string]int)
	}
	visitor.Downloads[fileType]++
}

func (s *Store) applyNDARequest(visitor *models.Visitor, data map[string]any, timestamp string) {
	signed := false
	if v, ok := data["signed"].(bool); ok {
		signed = v
	}
	s.ndaRequests[visitor.Token] = append(s.ndaRequests[visitor.Token], models.NDARecord{
		Timestamp: timestamp,
		Signed:    signed,
	})
	// Status never regresses once signed.
	if signed {
		visitor.NDAStatus = models.NDAStatusSigned
	} else if visitor.NDAStatus != models.NDAStatusSigned {
		visitor.NDAStatus = models.NDAStatusRequested
	}
}

// ResolveToken looks a visitor up by exact token, creating a placeholder
// record on a miss. Every call on an existing visitor increments its access
// count and refreshes last_access; repeated resolution keeps incrementing.
func (s *Store) ResolveToken(token string) (models.Visitor, error) {
	if token == "" {
		return models.Visitor{}, fmt.Errorf("%w: visitor token is required", ErrValidation)
	}

	now := time.Now().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()

	visitor, ok := s.byToken[token]
	if !ok {
		visitor = &models.Visitor{
			ID:          uuid.New().String(),
			Token:       token,
			Email:       SyntheticEmail(token),
			Name:        "Visitante Nuevo",
			Status:      models.VisitorStatusActive,
			AccessCount: 1,
			FirstAccess: now,
			LastAccess:  now,
			CreatedAt:   now,
			Downloads:   make(map[string]int),
			NDAStatus:   models.NDAStatusNone,
		}
		s.addVisitor(visitor)
		return *visitor, nil
	}

	visitor.AccessCount++
	if visitor.LastAccess == "" || now >= visitor.LastAccess {
		visitor.LastAccess = now
	}
	return *visitor, nil
}

// TotalEvents returns the current length of the event log.
func (s *Store) TotalEvents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// SyntheticEmail derives a placeholder address for a visitor whose real
// identity is unknown.
func SyntheticEmail(token string) string {
	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return prefix + "@unknown-visitor.com"
}

func stringFrom(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	v, _ := data[key].(string)
	return v
}

// totalTimeFrom reads data.total_time as whole seconds; absent, malformed or
// negative values count as zero.
func totalTimeFrom(data map[string]any) int {
	if data == nil {
		return 0
	}
	var seconds float64
	switch v := data["total_time"].(type) {
	case float64:
		seconds = v
	case int:
		seconds = float64(v)
	}
	if seconds < 0 {
		return 0
	}
	return int(seconds)
}

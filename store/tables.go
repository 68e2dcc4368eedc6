package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"projectzurich/api/models"
)

// Named collections served through the tables API.
const (
	TableVisitors  = "visitors"
	TableAnalytics = "analytics"
	TableSessions  = "sessions"
)

// ListOptions carries the common query parameters of a table read.
type ListOptions struct {
	Page         int
	Limit        int
	Search       string // case-insensitive substring match
	EventType    string // analytics only, exact match
	VisitorToken string // analytics and sessions, exact match
}

// ListResult is the uniform table-read envelope. Demo seed records are
// always merged ahead of runtime-created records; RealCount and DemoCount
// report the unfiltered split.
type ListResult struct {
	Data      any    `json:"data"`
	Total     int    `json:"total"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Table     string `json:"table"`
	RealCount int    `json:"real_count"`
	DemoCount int    `json:"demo_count"`
}

func (o ListOptions) normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 100
	}
	return o
}

// List reads one page of the named table. Unknown table names are a
// not-found error.
func (s *Store) List(table string, opts ListOptions) (ListResult, error) {
	opts = opts.normalize()
	switch table {
	case TableVisitors:
		return s.listVisitors(opts), nil
	case TableAnalytics:
		return s.listEvents(opts), nil
	case TableSessions:
		return s.listSessions(opts), nil
	default:
		return ListResult{}, fmt.Errorf("%w: unknown table %q", ErrNotFound, table)
	}
}

func (s *Store) listVisitors(opts ListOptions) ListResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	demo := demoVisitors()
	all := make([]models.Visitor, 0, len(demo)+len(s.visitors))
	all = append(all, demo...)
	for _, visitor := range s.visitors {
		all = append(all, *visitor)
	}

	filtered := all
	if opts.Search != "" {
		filtered = make([]models.Visitor, 0, len(all))
		for _, v := range all {
			if containsFold(opts.Search, v.Email, v.Name, v.Company, v.Token) {
				filtered = append(filtered, v)
			}
		}
	}

	page := paginateVisitors(filtered, opts)
	return ListResult{
		Data:      page,
		Total:     len(filtered),
		Page:      opts.Page,
		Limit:     opts.Limit,
		Table:     TableVisitors,
		RealCount: len(s.visitors),
		DemoCount: len(demo),
	}
}

func (s *Store) listEvents(opts ListOptions) ListResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	demo := demoEvents()
	all := make([]models.AnalyticsEvent, 0, len(demo)+len(s.events))
	all = append(all, demo...)
	all = append(all, s.events...)

	filtered := make([]models.AnalyticsEvent, 0, len(all))
	for _, e := range all {
		if opts.Search != "" && !containsFold(opts.Search, e.VisitorEmail, e.EventType, e.PageURL) {
			continue
		}
		if opts.EventType != "" && e.EventType != opts.EventType {
			continue
		}
		if opts.VisitorToken != "" && e.VisitorToken != opts.VisitorToken {
			continue
		}
		filtered = append(filtered, e)
	}

	page := paginateEvents(filtered, opts)
	return ListResult{
		Data:      page,
		Total:     len(filtered),
		Page:      opts.Page,
		Limit:     opts.Limit,
		Table:     TableAnalytics,
		RealCount: len(s.events),
		DemoCount: len(demo),
	}
}

func (s *Store) listSessions(opts ListOptions) ListResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	demo := demoSessions()
	all := make([]models.Session, 0, len(demo)+len(s.sessions))
	all = append(all, demo...)
	all = append(all, s.sessions...)

	filtered := make([]models.Session, 0, len(all))
	for _, sess := range all {
		if opts.Search != "" && !containsFold(opts.Search, sess.VisitorEmail, sess.VisitorToken) {
			continue
		}
		if opts.VisitorToken != "" && sess.VisitorToken != opts.VisitorToken {
			continue
		}
		filtered = append(filtered, sess)
	}

	page := paginateSessions(filtered, opts)
	return ListResult{
		Data:      page,
		Total:     len(filtered),
		Page:      opts.Page,
		Limit:     opts.Limit,
		Table:     TableSessions,
		RealCount: len(s.sessions),
		DemoCount: len(demo),
	}
}

// GetVisitor returns a single visitor by id, demo records included.
func (s *Store) GetVisitor(id string) (models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range demoVisitors() {
		if v.ID == id {
			return v, nil
		}
	}
	if visitor, ok := s.byID[id]; ok {
		return *visitor, nil
	}
	return models.Visitor{}, fmt.Errorf("%w: visitor %q", ErrNotFound, id)
}

// CreateVisitor adds a runtime visitor record. Absent fields get defaults;
// id and created_at are always server-assigned.
func (s *Store) CreateVisitor(input models.Visitor) models.Visitor {
	now := time.Now().Format(time.RFC3339)

	visitor := &models.Visitor{
		ID:          uuid.New().String(),
		Token:       input.Token,
		Email:       input.Email,
		Name:        input.Name,
		Company:     input.Company,
		Status:      input.Status,
		AccessCount: input.AccessCount,
		FirstAccess: input.FirstAccess,
		LastAccess:  input.LastAccess,
		CreatedAt:   now,
		Downloads:   make(map[string]int),
		NDAStatus:   models.NDAStatusNone,
	}
	if visitor.Status == "" {
		visitor.Status = models.VisitorStatusActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addVisitor(visitor)

	return *visitor
}

// PatchVisitor merges the provided fields into the record with the given id.
// Patches against demo records return the merged view without persisting it.
func (s *Store) PatchVisitor(id string, fields map[string]any) (models.Visitor, error) {
	if id == "" {
		return models.Visitor{}, fmt.Errorf("%w: id is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if visitor, ok := s.byID[id]; ok {
		applyVisitorFields(visitor, fields)
		visitor.UpdatedAt = time.Now().Format(time.RFC3339)
		return *visitor, nil
	}

	for _, demo := range demoVisitors() {
		if demo.ID == id {
			applyVisitorFields(&demo, fields)
			return demo, nil
		}
	}

	return models.Visitor{}, fmt.Errorf("%w: visitor %q", ErrNotFound, id)
}

// DeleteVisitor removes the matching runtime record. Deleting an unknown or
// demo id is a safe no-op.
func (s *Store) DeleteVisitor(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	visitor, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byID, id)
	if visitor.Token != "" && s.byToken[visitor.Token] == visitor {
		delete(s.byToken, visitor.Token)
	}
	for i, v := range s.visitors {
		if v == visitor {
			s.visitors = append(s.visitors[:i], s.visitors[i+1:]...)
			break
		}
	}
	return nil
}

// CreateEvent stores a full tracker event posted to the analytics table and
// feeds it through the recorder dispatch so the aggregates stay consistent.
func (s *Store) CreateEvent(event models.AnalyticsEvent) (models.AnalyticsEvent, error) {
	if event.VisitorToken == "" {
		return models.AnalyticsEvent{}, fmt.Errorf("%w: visitor token is required", ErrValidation)
	}
	if event.EventType == "" {
		return models.AnalyticsEvent{}, fmt.Errorf("%w: event type is required", ErrValidation)
	}

	now := time.Now().Format(time.RFC3339)
	event.ID = uuid.New().String()
	event.CreatedAt = now
	if event.Timestamp == "" {
		event.Timestamp = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendEvent(event)

	return event, nil
}

// CreateSession stores a finalized or in-progress page session.
func (s *Store) CreateSession(input models.Session) models.Session {
	now := time.Now().Format(time.RFC3339)

	session := input
	session.ID = uuid.New().String()
	session.CreatedAt = now
	if session.SessionStart == "" {
		session.SessionStart = now
	}
	if session.MaxScrollPercentage < 0 {
		session.MaxScrollPercentage = 0
	}
	if session.MaxScrollPercentage > 100 {
		session.MaxScrollPercentage = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)

	return session
}

func applyVisitorFields(visitor *models.Visitor, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "token":
			if v, ok := value.(string); ok {
				visitor.Token = v
			}
		case "email":
			if v, ok := value.(string); ok {
				visitor.Email = v
			}
		case "name":
			if v, ok := value.(string); ok {
				visitor.Name = v
			}
		case "company":
			if v, ok := value.(string); ok {
				visitor.Company = v
			}
		case "status":
			if v, ok := value.(string); ok {
				visitor.Status = v
			}
		case "access_count":
			if v, ok := numberFrom(value); ok {
				visitor.AccessCount = v
			}
		case "first_access":
			if v, ok := value.(string); ok {
				visitor.FirstAccess = v
			}
		case "last_access":
			if v, ok := value.(string); ok {
				visitor.LastAccess = v
			}
		case "total_time":
			if v, ok := numberFrom(value); ok {
				visitor.TotalTime = v
			}
		case "nda_status":
			if v, ok := value.(string); ok {
				visitor.NDAStatus = v
			}
		case "visits":
			if v, ok := numberFrom(value); ok {
				visitor.Visits = v
			}
		}
	}
}

func numberFrom(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// containsFold reports whether any of the candidate fields contains needle,
// case-insensitively.
func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func paginateVisitors(items []models.Visitor, opts ListOptions) []models.Visitor {
	start, end := pageBounds(len(items), opts)
	return items[start:end]
}

func paginateEvents(items []models.AnalyticsEvent, opts ListOptions) []models.AnalyticsEvent {
	start, end := pageBounds(len(items), opts)
	return items[start:end]
}

func paginateSessions(items []models.Session, opts ListOptions) []models.Session {
	start, end := pageBounds(len(items), opts)
	return items[start:end]
}

func pageBounds(total int, opts ListOptions) (int, int) {
	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return start, end
}

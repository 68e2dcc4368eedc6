package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"projectzurich/api/models"
	"projectzurich/api/store"
)

// TableHandlers serves the named collections (visitors, analytics, sessions)
// through one uniform list/get/create/patch/delete surface.
type TableHandlers struct {
	Store *store.Store
}

func NewTableHandlers(s *store.Store) *TableHandlers {
	return &TableHandlers{
		Store: s,
	}
}

// GetTable lists one page of a table, or a single visitor when ?id= is set.
func (h *TableHandlers) GetTable(c *gin.Context) {
	table := c.Param("table")

	if id := c.Query("id"); id != "" && table == store.TableVisitors {
		visitor, err := h.Store.GetVisitor(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
			return
		}
		c.JSON(http.StatusOK, visitor)
		return
	}

	result, err := h.Store.List(table, listOptionsFrom(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PostTable creates a record in the named table.
func (h *TableHandlers) PostTable(c *gin.Context) {
	switch c.Param("table") {
	case store.TableVisitors:
		h.createVisitor(c)
	case store.TableAnalytics:
		h.createEvent(c)
	case store.TableSessions:
		h.createSession(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	}
}

func (h *TableHandlers) createVisitor(c *gin.Context) {
	var input models.Visitor
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Error binding visitor JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	visitor := h.Store.CreateVisitor(input)
	c.JSON(http.StatusCreated, visitor)
}

// createEvent accepts both the tracker body (camelCase aliases, nested data)
// and the canonical event field names.
func (h *TableHandlers) createEvent(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("Error binding event JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	data := mapFrom(body, "data")
	if data == nil {
		data = mapFrom(body, "event_data")
	}

	event := models.AnalyticsEvent{
		VisitorToken: firstString(body, "visitorToken", "visitor_token"),
		VisitorEmail: firstString(body, "visitor_email"),
		EventType:    firstString(body, "eventType", "event_type"),
		EventData:    data,
		SessionID:    firstString(body, "session_id"),
		PageURL:      firstString(body, "page_url"),
		UserAgent:    firstString(body, "user_agent"),
		IPAddress:    c.ClientIP(),
		Timestamp:    firstString(body, "timestamp"),
	}
	if event.SessionID == "" {
		event.SessionID, _ = data["session"].(string)
	}
	if event.PageURL == "" {
		event.PageURL, _ = data["page"].(string)
	}
	if event.UserAgent == "" {
		event.UserAgent, _ = data["user_agent"].(string)
	}

	created, err := h.Store.CreateEvent(event)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TableHandlers) createSession(c *gin.Context) {
	var input models.Session
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Printf("Error binding session JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	session := h.Store.CreateSession(input)
	c.JSON(http.StatusCreated, session)
}

// UpdateVisitor merges the provided fields into a visitor record (PATCH and
// PUT behave identically).
func (h *TableHandlers) UpdateVisitor(c *gin.Context) {
	if c.Param("table") != store.TableVisitors {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		log.Printf("Error binding visitor patch JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	visitor, err := h.Store.PatchVisitor(id, fields)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
		return
	}
	c.JSON(http.StatusOK, visitor)
}

// DeleteVisitor removes a visitor record. Unknown ids are a safe no-op; the
// response is always 204.
func (h *TableHandlers) DeleteVisitor(c *gin.Context) {
	if c.Param("table") != store.TableVisitors {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}
	if err := h.Store.DeleteVisitor(id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func listOptionsFrom(c *gin.Context) store.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return store.ListOptions{
		Page:         page,
		Limit:        limit,
		Search:       c.Query("search"),
		EventType:    c.Query("event_type"),
		VisitorToken: c.Query("visitor_token"),
	}
}

func firstString(body map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func mapFrom(body map[string]any, key string) map[string]any {
	v, _ := body[key].(map[string]any)
	return v
}

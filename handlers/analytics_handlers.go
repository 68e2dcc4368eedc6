package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectzurich/api/models"
	"projectzurich/api/store"
)

type AnalyticsHandlers struct {
	Store *store.Store
}

func NewAnalyticsHandlers(s *store.Store) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		Store: s,
	}
}

// GetAnalytics serves the full dashboard summary, or a single section of it
// when ?type= names one.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	sectionName := c.Query("type")
	if sectionName != "" {
		if section, ok := h.Store.Section(sectionName); ok {
			c.JSON(http.StatusOK, section)
			return
		}
	}
	c.JSON(http.StatusOK, h.Store.Summarize())
}

// PostAnalytics records one tracker event. Unknown visitor tokens are
// normal; only a missing token or event type is rejected.
func (h *AnalyticsHandlers) PostAnalytics(c *gin.Context) {
	var req models.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding analytics event JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	eventID, err := h.Store.Record(req.VisitorToken, req.EventType, req.Data, req.Timestamp)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"eventId":     eventID,
		"message":     "Event recorded successfully",
		"totalEvents": h.Store.TotalEvents(),
	})
}

// respondStoreError maps store sentinels onto the API error envelope.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}
}

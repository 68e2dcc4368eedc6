package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"projectzurich/api/models"
	"projectzurich/api/store"
	"projectzurich/api/utils"
)

// AdminHandlers backs the dashboard-only operations: bulk link generation
// and visitor resolution.
type AdminHandlers struct {
	Store *store.Store
}

func NewAdminHandlers(s *store.Store) *AdminHandlers {
	return &AdminHandlers{
		Store: s,
	}
}

type generateLinksRequest struct {
	Investors []struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Company string `json:"company"`
	} `json:"investors"`
	Count int `json:"count"`
}

type generatedLink struct {
	Visitor models.Visitor `json:"visitor"`
	URL     string         `json:"url"`
}

// GenerateLinks creates visitor records with fresh tracking tokens, either
// one per named investor or Count anonymous ones.
func (h *AdminHandlers) GenerateLinks(c *gin.Context) {
	var req generateLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding link generation JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.Investors) == 0 && req.Count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "investors or count is required"})
		return
	}

	baseURL := siteBaseURL(c)

	var links []generatedLink
	for _, investor := range req.Investors {
		token := utils.GenerateToken()
		visitor := h.Store.CreateVisitor(models.Visitor{
			Token:   token,
			Email:   investor.Email,
			Name:    investor.Name,
			Company: investor.Company,
			Status:  models.VisitorStatusActive,
		})
		links = append(links, generatedLink{Visitor: visitor, URL: trackingURL(baseURL, token)})
	}
	for i := 0; i < req.Count; i++ {
		token := utils.GenerateToken()
		visitor := h.Store.CreateVisitor(models.Visitor{
			Token:  token,
			Status: models.VisitorStatusActive,
		})
		links = append(links, generatedLink{Visitor: visitor, URL: trackingURL(baseURL, token)})
	}

	log.Printf("Generated %d tracking links", len(links))
	c.JSON(http.StatusCreated, gin.H{
		"links": links,
		"count": len(links),
	})
}

type resolveVisitorRequest struct {
	Token string `json:"token"`
}

// ResolveVisitor is the tracker's identity lookup: returns the visitor for a
// token, creating a placeholder on first sight. Each call counts as an
// access.
func (h *AdminHandlers) ResolveVisitor(c *gin.Context) {
	var req resolveVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding visitor resolution JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	visitor, err := h.Store.ResolveToken(req.Token)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, visitor)
}

// Health reports liveness.
func (h *AdminHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func siteBaseURL(c *gin.Context) string {
	if override := os.Getenv("SITE_URL"); override != "" {
		return override
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func trackingURL(baseURL, token string) string {
	return baseURL + "/index.html?token=" + token
}

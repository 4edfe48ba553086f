package movies

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Repo *Repo

	// RunScrape starts one detached ingestion batch. Fire-and-forget: the
	// trigger endpoint acknowledges and never reports progress back.
	RunScrape func(ctx context.Context)
}

func NewHandler(repo *Repo, runScrape func(ctx context.Context)) *Handler {
	return &Handler{Repo: repo, RunScrape: runScrape}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, adminOnly gin.HandlerFunc) {
	r.GET("/movies", h.list)
	r.GET("/movies/search", h.search)
	r.GET("/movies/filter", h.filter)
	r.GET("/export/csv", h.exportCSV)
	r.POST("/scraper/run", adminOnly, h.runScraper)
}

func (h *Handler) list(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 25)
	if !ok {
		return
	}

	items, err := h.Repo.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) search(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title parameter"})
		return
	}

	items, err := h.Repo.SearchByTitle(c.Request.Context(), title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no movies found with title containing %q", title)})
		return
	}
	c.JSON(http.StatusOK, items)
}

var validOrders = map[string]bool{"asc": true, "desc": true}

func (h *Handler) filter(c *gin.Context) {
	q := FilterQuery{Genre: c.Query("genre")}

	if s := c.Query("min_rating"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating parameter: must be a number between 0 and 10"})
			return
		}
		q.MinRating = &f
	}

	if s := c.Query("min_year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1800 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_year parameter: must be an integer >= 1800"})
			return
		}
		q.MinYear = &n
	}

	q.SortBy = c.DefaultQuery("sort_by", "rating")
	if q.SortBy != "discrepancy" {
		if _, ok := sortColumns[q.SortBy]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort_by parameter: must be one of rating, tomatometer, audience, year, runtime, discrepancy"})
			return
		}
	}

	q.Order = c.DefaultQuery("order", "desc")
	if !validOrders[q.Order] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order parameter: must be asc or desc"})
		return
	}

	// Both branches report an empty result as not-found; the discrepancy
	// path intentionally follows the same contract as the plain one.
	if q.SortBy == "discrepancy" {
		ranked, err := h.Repo.FilterByDiscrepancy(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "filter failed"})
			return
		}
		if len(ranked) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no movies found matching your criteria"})
			return
		}
		c.JSON(http.StatusOK, ranked)
		return
	}

	items, err := h.Repo.Filter(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filter failed"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no movies found matching your criteria"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) exportCSV(c *gin.Context) {
	items, err := h.Repo.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename=movies.csv`)
	c.Status(http.StatusOK)

	if err := WriteCSV(c.Writer, items); err != nil {
		log.Printf("[movies] csv export: %v", err)
	}
}

func (h *Handler) runScraper(c *gin.Context) {
	if h.RunScrape == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scraper not configured"})
		return
	}

	jobID := uuid.NewString()
	log.Printf("[movies] scrape job %s triggered", jobID)

	// detached from the request: the batch outlives this HTTP call
	go h.RunScrape(context.Background())

	c.JSON(http.StatusAccepted, gin.H{
		"job_id":  jobID,
		"message": "scraping started in the background; it will take several minutes to complete",
	})
}

// queryInt parses an optional non-negative integer parameter, replying 400
// with the parameter's name on malformed input.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	s := c.Query(name)
	if strings.TrimSpace(s) == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s parameter: must be a non-negative integer", name)})
		return 0, false
	}
	return n, true
}

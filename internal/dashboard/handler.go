package dashboard

import (
	"html/template"
	"net/http"
	"time"

	"filevault_bot/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// recentFileLimit caps the recent-files listing on the page and the API.
const recentFileLimit = 10

// Handler exposes the dashboard routes.
type Handler struct {
	svc  *Service
	page *template.Template
}

// NewHandler creates the dashboard HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:  svc,
		page: template.Must(template.New("dashboard").Parse(pageTemplate)),
	}
}

type pageData struct {
	Stats  Stats
	Recent []FileSummary
}

// Dashboard renders the HTML report.
func (h *Handler) Dashboard(c *gin.Context) {
	data := pageData{
		Stats:  h.svc.Stats(),
		Recent: h.svc.RecentFiles(recentFileLimit),
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(c.Writer, data); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render dashboard")
	}
}

// APIStats serves the aggregate statistics as JSON.
func (h *Handler) APIStats(c *gin.Context) {
	httpkit.OK(c, h.svc.Stats())
}

// APIFiles serves the recent-files listing as JSON.
func (h *Handler) APIFiles(c *gin.Context) {
	httpkit.OK(c, h.svc.RecentFiles(recentFileLimit))
}

// Health is the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

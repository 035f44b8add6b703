package dashboard

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	quoteservice "softwaresur_backend/internal/quotes/service"
	"softwaresur_backend/internal/quotes/transport"
	"softwaresur_backend/platform/apperr"
	"softwaresur_backend/platform/httpkit"
)

const keepAliveInterval = 30 * time.Second

// Handler serves the admin dashboard endpoints: the live change feed and
// the CSV export.
type Handler struct {
	quotes *quoteservice.Service
	admins quoteservice.AdminChecker
	feed   *Feed
}

func NewHandler(quotes *quoteservice.Service, admins quoteservice.AdminChecker, feed *Feed) *Handler {
	return &Handler{quotes: quotes, admins: admins, feed: feed}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.Events)
	rg.GET("/export", h.Export)
}

// Events handles GET /api/v1/admin/dashboard/events as a server-sent
// event stream. The auth middleware accepts the token as a query param
// here because EventSource cannot set headers.
func (h *Handler) Events(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if !h.admins.IsAdmin(c.Request.Context(), identity.UserID()) {
		httpkit.HandleError(c, apperr.Forbidden("admin privileges required"))
		return
	}

	ch, cancel := h.feed.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case change, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", change)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Export handles GET /api/v1/admin/dashboard/export, streaming the
// current listing as CSV. Accepts the same status/search filters as the
// listing endpoint.
func (h *Handler) Export(c *gin.Context) {
	var filter transport.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	records, err := h.quotes.List(c.Request.Context(), identity.UserID(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	payload, err := BuildCSV(records)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(time.Now())+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

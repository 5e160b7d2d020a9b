package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/connexo-app/backend/internal/middleware"
	"github.com/connexo-app/backend/internal/render"
	"github.com/connexo-app/backend/internal/store"
)

// PageHandler serves the read-only public projection of a profile, as
// JSON for the frontend and as a standalone HTML page at /u/<username>.
type PageHandler struct {
	profiles  *store.Store
	validator middleware.TokenValidator
	pages     *gocache.Cache
}

// NewPageHandler creates a new PageHandler. pages may be nil to disable
// projection caching.
func NewPageHandler(profiles *store.Store, validator middleware.TokenValidator, pages *gocache.Cache) *PageHandler {
	return &PageHandler{profiles: profiles, validator: validator, pages: pages}
}

// RegisterRoutes registers the public page routes.
func (h *PageHandler) RegisterRoutes(router *gin.Engine, v1 *gin.RouterGroup) {
	v1.GET("/pages/:username", middleware.OptionalAuth(h.validator), h.GetPage)
	router.GET("/u/:username", middleware.OptionalAuth(h.validator), h.GetPageHTML)
}

func (h *PageHandler) lookup(c *gin.Context) (render.Page, *store.Session, bool) {
	username := c.Param("username")

	sess, ok := h.profiles.Resolve(c.Request.Context(), username)
	if !ok {
		return render.Page{}, nil, false
	}

	if h.pages != nil {
		if cached, found := h.pages.Get(username); found {
			return cached.(render.Page), sess, true
		}
	}
	page := render.Project(sess.Document())
	if h.pages != nil {
		h.pages.SetDefault(username, page)
	}
	return page, sess, true
}

// ownProfile reports whether the requester's session belongs to the
// rendered document. Purely local detection, not an authorization check.
func ownProfile(c *gin.Context, sess *store.Session) bool {
	userID, exists := c.Get("user_id")
	if !exists {
		return false
	}
	return userID.(uuid.UUID) == sess.UserID()
}

func (h *PageHandler) GetPage(c *gin.Context) {
	page, sess, ok := h.lookup(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":           page,
		"is_own_profile": ownProfile(c, sess),
	})
}

func (h *PageHandler) GetPageHTML(c *gin.Context) {
	page, sess, ok := h.lookup(c)
	if !ok {
		c.String(http.StatusNotFound, "profile not found")
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(c.Writer, page, ownProfile(c, sess)); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/connexo-app/backend/internal/middleware"
	"github.com/connexo-app/backend/internal/render"
	"github.com/connexo-app/backend/internal/service"
	"github.com/connexo-app/backend/internal/store"
	"github.com/connexo-app/backend/internal/types"
	"github.com/connexo-app/backend/internal/vcard"
)

// maxImageBytes caps appearance image uploads.
const maxImageBytes = 5 << 20

// DashboardHandler is the editor surface: every route reads or mutates
// the caller's profile document through the store's update operations.
type DashboardHandler struct {
	profiles      *store.Store
	account       *service.AccountService
	images        *service.ImageService
	analytics     *service.AnalyticsService
	validator     middleware.TokenValidator
	uploadLimiter *middleware.RateLimiter
}

// NewDashboardHandler creates a new DashboardHandler. uploadLimiter may
// be nil when Redis is not configured.
func NewDashboardHandler(
	profiles *store.Store,
	account *service.AccountService,
	images *service.ImageService,
	analytics *service.AnalyticsService,
	validator middleware.TokenValidator,
	uploadLimiter *middleware.RateLimiter,
) *DashboardHandler {
	return &DashboardHandler{
		profiles:      profiles,
		account:       account,
		images:        images,
		analytics:     analytics,
		validator:     validator,
		uploadLimiter: uploadLimiter,
	}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(h.validator))
	{
		dashboard.GET("/profile", h.GetProfile)
		dashboard.PUT("/links", h.UpdateLinks)
		dashboard.POST("/links/reorder", h.ReorderLinks)
		dashboard.PUT("/contact", h.UpdateContact)
		dashboard.PUT("/appearance", h.UpdateAppearance)
		dashboard.PUT("/username", h.UpdateUsername)
		dashboard.POST("/preview", h.Preview)
		dashboard.POST("/save", h.Save)
		dashboard.GET("/save-status", h.SaveStatus)
		dashboard.GET("/contact-card", h.ContactCard)
		dashboard.GET("/analytics", h.Analytics)
		dashboard.GET("/icons", h.Icons)
		dashboard.PUT("/account", h.UpdateAccount)
		dashboard.POST("/account/password", h.ChangePassword)

		upload := dashboard.Group("")
		if h.uploadLimiter != nil {
			upload.Use(h.uploadLimiter.RateLimitMiddleware())
		}
		upload.POST("/images", h.UploadImage)
	}
}

func (h *DashboardHandler) session(c *gin.Context) (*store.Session, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return h.profiles.Session(c.Request.Context(), userID.(uuid.UUID)), true
}

func (h *DashboardHandler) GetProfile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Document())
}

func (h *DashboardHandler) UpdateLinks(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req types.UpdateLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.UpdateLinks(req.Links)
	c.JSON(http.StatusOK, sess.Document())
}

func (h *DashboardHandler) ReorderLinks(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req types.ReorderLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sess.ReorderLinks(req.From, req.To); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Document())
}

func (h *DashboardHandler) UpdateContact(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var contact types.ContactInfo
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.UpdateContactData(contact)
	c.JSON(http.StatusOK, sess.Document())
}

func (h *DashboardHandler) UpdateAppearance(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var appearance types.AppearanceTheme
	if err := c.ShouldBindJSON(&appearance); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.UpdateAppearance(appearance)
	c.JSON(http.StatusOK, sess.Document())
}

func (h *DashboardHandler) UpdateUsername(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req types.UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.UpdateUsername(req.Username)
	c.JSON(http.StatusOK, sess.Document())
}

// Preview projects an in-progress document through the same rules the
// public page uses, so edits are visible before any save completes.
func (h *DashboardHandler) Preview(c *gin.Context) {
	var doc types.ProfileDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	doc.Normalize()
	c.JSON(http.StatusOK, render.Project(doc))
}

// Save forces immediate persistence, bypassing the debounce.
func (h *DashboardHandler) Save(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if err := sess.Flush(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "changes saved successfully"})
}

// SaveStatus reports pending edits and the last background save error,
// so the dashboard can surface write failures without blocking.
func (h *DashboardHandler) SaveStatus(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	dirty, saveErr := sess.SaveState()
	resp := types.SaveStatusResponse{Dirty: dirty}
	if saveErr != nil {
		resp.Error = saveErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ContactCard streams the vCard download built from the current document.
func (h *DashboardHandler) ContactCard(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	doc := sess.Document()
	payload := vcard.Encode(doc.Appearance.Title, doc.ContactData, doc.Appearance.Bio)
	filename := vcard.Filename(doc.Appearance.Title)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, vcard.ContentType, []byte(payload))
}

func (h *DashboardHandler) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Summary())
}

func (h *DashboardHandler) Icons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": render.IconNames()})
}

func (h *DashboardHandler) UpdateAccount(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.account.UpdateAccount(c.Request.Context(), userID.(uuid.UUID), req.Username, req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account"})
	}
}

func (h *DashboardHandler) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.account.ChangePassword(c.Request.Context(), userID.(uuid.UUID), req.Current, req.New, req.Confirm)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
	case errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
	}
}

func (h *DashboardHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 5MB"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	ref, err := h.images.Store(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": ref})
}

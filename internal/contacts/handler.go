package contacts

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/middleware"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/respond"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/object"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/telemetry"
)

type Handler struct {
	Svc   *Service
	Store object.ObjectStore
	// BaseURL prefixes avatar links handed back to clients.
	BaseURL string
}

func NewHandler(svc *Service, store object.ObjectStore, baseURL string) *Handler {
	return &Handler{Svc: svc, Store: store, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contacts", h.list)
	rg.POST("/contacts", h.create)
	rg.PUT("/contacts/bulk-tag", h.bulkTag)
	rg.PUT("/contacts/:id", h.update)
	rg.DELETE("/contacts/:id", h.delete)
	rg.GET("/contacts/export", h.export)
	rg.POST("/contacts/avatar", h.uploadAvatar)
	rg.GET("/contacts/avatar/*key", h.serveAvatar)
}

type contactRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    string  `json:"phone"`
	Category *string `json:"category"`
	Birthday *string `json:"birthday"`
	Company  *string `json:"company"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,url"`
}

func (req contactRequest) input() Input {
	return Input{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Category: req.Category,
		Birthday: req.Birthday,
		Company:  req.Company,
		PhotoURL: req.PhotoURL,
	}
}

func (h *Handler) list(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	out, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list contacts", nil)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	contact, err := h.Svc.Create(c.Request.Context(), ownerID, req.input())
	if err != nil {
		h.writeError(c, err, "failed to create contact")
		return
	}
	respond.Created(c, contact)
}

func (h *Handler) update(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	contact, err := h.Svc.Update(c.Request.Context(), ownerID, c.Param("id"), req.input())
	if err != nil {
		h.writeError(c, err, "failed to update contact")
		return
	}
	respond.OK(c, contact)
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete contact")
		return
	}
	respond.OK(c, gin.H{"message": "Contact deleted"})
}

type bulkTagRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1"`
	Category string   `json:"category" binding:"required"`
}

func (h *Handler) bulkTag(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req bulkTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "ids and category are required", nil)
		return
	}

	updated, err := h.Svc.BulkTag(c.Request.Context(), ownerID, req.IDs, req.Category)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to tag contacts", nil)
		return
	}
	respond.OK(c, gin.H{"updated": updated})
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "avatar file is required", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	defer f.Close()

	key, size, mimeType, err := h.Store.Save(c.Request.Context(), ownerID, fileHeader.Filename, f)
	if err != nil {
		telemetry.Error("contacts.avatar_save_failed", map[string]any{"err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store avatar", nil)
		return
	}

	respond.OK(c, gin.H{
		"url":      h.BaseURL + "/api/v1/contacts/avatar/" + key,
		"size":     size,
		"mimeType": mimeType,
	})
}

func (h *Handler) serveAvatar(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "avatar not found", nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "avatar not found", nil)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("contacts.avatar_stream_failed", map[string]any{"err": err.Error()})
	}
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidPhone):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid phone number format", nil)
	case errors.Is(err, ErrInvalidBirthday):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid birthday", nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "duplicate_contact", "Contact with this email or phone already exists", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Contact not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Not allowed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

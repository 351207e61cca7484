package importer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/middleware"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/respond"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import/csv", h.importCSV)
	rg.POST("/import/vcard", h.importVCard)
}

func (h *Handler) importCSV(c *gin.Context) {
	h.runImport(c, h.Svc.ImportCSV)
}

func (h *Handler) importVCard(c *gin.Context) {
	h.runImport(c, h.Svc.ImportVCard)
}

// runImport spools the upload to a temp file, feeds it to the import service
// and answers {"inserted": n}. The temp file is removed by one deferred
// cleanup that covers success, parse failure and persistence failure alike.
func (h *Handler) runImport(c *gin.Context, do func(ctx context.Context, ownerID string, r io.Reader) (int64, error)) {
	ownerID := middleware.UserIDFromContext(c)
	if ownerID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	tmpFile, err := os.CreateTemp("", "contact-import-*")
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage upload", nil)
		return
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
		return
	}
	_, err = io.Copy(tmpFile, src)
	src.Close()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage upload", nil)
		return
	}
	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage upload", nil)
		return
	}

	inserted, err := do(c.Request.Context(), ownerID, tmpFile)
	if err != nil {
		if errors.Is(err, ErrParse) {
			respond.Error(c, http.StatusBadRequest, "parse_error", err.Error(), nil)
			return
		}
		telemetry.Error("importer.persist_failed", map[string]any{"err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import contacts", nil)
		return
	}

	respond.OK(c, gin.H{"inserted": inserted})
}

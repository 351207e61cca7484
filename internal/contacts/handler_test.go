package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/respond"
	localstore "github.com/JOULifestyle/Contact-Management-App/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, ownerID string) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo(), "NG")
	h := NewHandler(svc, localstore.New(t.TempDir()), "http://localhost:8000")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if ownerID != "" {
			c.Set("userId", ownerID)
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body respond.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v (%s)", err, resp.Body.String())
	}
	return body.Error.Message
}

func TestHandlerCreateAndList(t *testing.T) {
	r, _ := newTestRouter(t, "owner-1")

	resp := doJSON(t, r, http.MethodPost, "/api/v1/contacts", gin.H{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"phone": "08031234567",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Contact
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created: %v", err)
	}
	if created.Phone != "+2348031234567" {
		t.Fatalf("expected normalized phone, got %q", created.Phone)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/contacts", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var listed []Contact
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created contact, got %+v", listed)
	}
}

func TestHandlerCreateInvalidPhone(t *testing.T) {
	r, _ := newTestRouter(t, "owner-1")

	resp := doJSON(t, r, http.MethodPost, "/api/v1/contacts", gin.H{
		"name":  "Ada",
		"phone": "not-a-phone",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Invalid phone number format" {
		t.Fatalf("expected phone format message, got %q", msg)
	}
}

func TestHandlerCreateDuplicateConflict(t *testing.T) {
	r, _ := newTestRouter(t, "owner-1")

	first := doJSON(t, r, http.MethodPost, "/api/v1/contacts", gin.H{"name": "Ada", "email": "ada@example.com"})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	second := doJSON(t, r, http.MethodPost, "/api/v1/contacts", gin.H{"name": "Ada 2", "email": "ada@example.com"})
	if second.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", second.Code)
	}
}

func TestHandlerBulkTag(t *testing.T) {
	r, h := newTestRouter(t, "owner-1")

	a, err := h.Svc.Create(context.Background(), "owner-1", Input{Name: "Ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := h.Svc.Create(context.Background(), "owner-1", Input{Name: "Grace"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp := doJSON(t, r, http.MethodPut, "/api/v1/contacts/bulk-tag", gin.H{
		"ids":      []string{a.ID, b.ID, "missing"},
		"category": "colleagues",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]int64
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["updated"] != 2 {
		t.Fatalf("expected 2 updated, got %d", body["updated"])
	}
}

func TestHandlerExportCSV(t *testing.T) {
	r, h := newTestRouter(t, "owner-1")

	ctx := context.Background()
	if _, err := h.Svc.Create(ctx, "owner-1", Input{Name: "Ada", Email: "ada@example.com", Phone: "+2348031234567"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/v1/contacts/export?format=csv", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv, got %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), resp.Body.String())
	}
	if lines[0] != "name,email,phone,category,birthday,company,photoUrl" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "ada@example.com") {
		t.Fatalf("expected contact row, got %q", lines[1])
	}
}

func TestHandlerExportVCard(t *testing.T) {
	r, h := newTestRouter(t, "owner-1")

	ctx := context.Background()
	if _, err := h.Svc.Create(ctx, "owner-1", Input{Name: "Ada", Phone: "+2348031234567"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/v1/contacts/export?format=vcard", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "BEGIN:VCARD") || !strings.Contains(body, "FN:Ada") {
		t.Fatalf("expected vCard output, got %q", body)
	}
	if !strings.Contains(body, "VERSION:3.0") {
		t.Fatalf("expected 3.0 cards, got %q", body)
	}
}

func TestHandlerExportRejectsUnknownFormat(t *testing.T) {
	r, _ := newTestRouter(t, "owner-1")

	resp := doJSON(t, r, http.MethodGet, "/api/v1/contacts/export?format=xlsx", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerAvatarUploadAndServe(t *testing.T) {
	r, _ := newTestRouter(t, "owner-1")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "photo.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	const urlPrefix = "http://localhost:8000/api/v1/contacts/avatar/"
	if !strings.HasPrefix(body.URL, urlPrefix) {
		t.Fatalf("unexpected avatar url %q", body.URL)
	}

	servePath := "/api/v1/contacts/avatar/" + strings.TrimPrefix(body.URL, urlPrefix)
	getResp := doJSON(t, r, http.MethodGet, servePath, nil)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200 serving avatar, got %d", getResp.Code)
	}
	if got := getResp.Body.String(); got != "png-bytes" {
		t.Fatalf("expected stored bytes back, got %q", got)
	}
}

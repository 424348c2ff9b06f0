package resumes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"autojobber-backend/internal/parser"
	"autojobber-backend/internal/resumes"
	"autojobber-backend/internal/shared/server/respond"
	"autojobber-backend/internal/shared/storage/object/local"
)

type stubParser struct {
	parsed parser.ParsedResume
	err    error
}

func (p stubParser) Parse(ctx context.Context, data []byte, mimeType, fileName string) (parser.ParsedResume, error) {
	if p.err != nil {
		return parser.ParsedResume{}, p.err
	}
	return p.parsed, nil
}

func newRouter(t *testing.T, userID string, p parser.Parser) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &resumes.Service{
		Store:        local.New(t.TempDir()),
		Repo:         resumes.NewMemoryRepo(),
		Parser:       p,
		ParseTimeout: time.Second,
	}
	handler := resumes.NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func uploadRequest(t *testing.T, fileName, mimeType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadEndpointCreatesActiveResume(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{parsed: parser.ParsedResume{Email: "a@b.io"}})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.pdf", parser.MimePDF, []byte("%PDF-1.4 body")))
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", resp.Code, resp.Body.String())
	}

	var created resumes.ResumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ResumeID == "" || !created.IsActive {
		t.Fatalf("response = %+v, want active resume with id", created)
	}

	activeResp := httptest.NewRecorder()
	router.ServeHTTP(activeResp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/active", nil))
	if activeResp.Code != http.StatusOK {
		t.Fatalf("active status = %d, want 200", activeResp.Code)
	}
}

func TestUploadEndpointRejectsUnsupportedType(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "notes.txt", "text/plain", []byte("hello")))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}

	var body respond.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("code = %s, want validation_error", body.Error.Code)
	}
}

func TestUploadEndpointParseFailureReturns502(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{err: parser.ErrUnavailable})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.pdf", parser.MimePDF, []byte("%PDF-1.4 body")))
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", resp.Code, resp.Body.String())
	}

	var body respond.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "upstream_unavailable" {
		t.Fatalf("code = %s, want upstream_unavailable", body.Error.Code)
	}

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil))
	var list []resumes.ResumeResponse
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rows = %d, want 0 after failed parse", len(list))
	}
}

func TestActivateEndpointKeepsSingleActive(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{})

	var first, second resumes.ResumeResponse
	for i, dest := range []*resumes.ResumeResponse{&first, &second} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, uploadRequest(t, "cv.pdf", parser.MimePDF, []byte("body")))
		if resp.Code != http.StatusCreated {
			t.Fatalf("upload #%d status = %d", i+1, resp.Code)
		}
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			t.Fatalf("decode upload #%d: %v", i+1, err)
		}
	}

	// Reactivate the first one, twice: second call is a no-op.
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/api/v1/resumes/"+first.ResumeID+"/active", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("activate #%d status = %d", i+1, resp.Code)
		}
	}

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil))
	var list []resumes.ResumeResponse
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	activeCount := 0
	for _, r := range list {
		if r.ResumeID == second.ResumeID && r.IsActive {
			t.Fatal("previously active resume still flagged active")
		}
		if r.IsActive {
			activeCount++
			if r.ResumeID != first.ResumeID {
				t.Fatalf("active = %s, want %s", r.ResumeID, first.ResumeID)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("active count = %d, want 1", activeCount)
	}
}

func TestActivateEndpointUnknownResume404(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/api/v1/resumes/no-such-id/active", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestDeleteEndpointReturns204(t *testing.T) {
	router := newRouter(t, "user-1", stubParser{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.pdf", parser.MimePDF, []byte("body")))
	var created resumes.ResumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	delResp := httptest.NewRecorder()
	router.ServeHTTP(delResp, httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+created.ResumeID, nil))
	if delResp.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", delResp.Code)
	}

	activeResp := httptest.NewRecorder()
	router.ServeHTTP(activeResp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/active", nil))
	if activeResp.Code != http.StatusNotFound {
		t.Fatalf("active status = %d, want 404 after delete", activeResp.Code)
	}
}

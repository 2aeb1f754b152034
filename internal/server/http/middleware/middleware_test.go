package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func gzipped(t *testing.T, payload string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(payload)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	_ = gz.Close()
	return buf.Bytes()
}

func TestDecompressRequest(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.PUT("/api/drafts/:id/customer", func(c *gin.Context) {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		body = req.Code
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/drafts/d1/customer", bytes.NewReader(gzipped(t, `{"code":"C001"}`)))
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || body != "C001" {
		t.Fatalf("expected decompressed body, got status %d code %q", resp.Code, body)
	}

	body = ""
	req = httptest.NewRequest(http.MethodPut, "/api/drafts/d1/customer", strings.NewReader(`{"code":"C002"}`))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "C002" {
		t.Fatalf("expected plain body, got %q", body)
	}
}

func TestDecompressRequestMalformed(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	called := false
	router.POST("/", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if called {
		t.Fatal("handler must not run for a malformed body")
	}
	var payload map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload["error"] == "" {
		t.Fatalf("expected error message, got %s", resp.Body.String())
	}
}

type capture struct {
	records []map[string]any
}

func (c *capture) Write(p []byte) (int, error) {
	var rec map[string]any
	if err := json.Unmarshal(p, &rec); err == nil {
		c.records = append(c.records, rec)
	}
	return len(p), nil
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantDraft string
	}{
		{name: "ok", path: "/api/drafts/d1", status: http.StatusOK, wantLevel: "INFO", wantDraft: "d1"},
		{name: "not found", path: "/api/drafts/d2", status: http.StatusNotFound, wantLevel: "WARN", wantDraft: "d2"},
		{name: "server error", path: "/api/submissions", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &capture{}
			router := gin.New()
			router.Use(RequestLogger(slog.New(slog.NewJSONHandler(out, nil))))
			router.GET("/api/drafts/:id", func(c *gin.Context) { c.Status(tt.status) })
			router.GET("/api/submissions", func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if len(out.records) != 1 {
				t.Fatalf("expected one record, got %d", len(out.records))
			}
			rec := out.records[0]
			if rec["level"] != tt.wantLevel || rec["msg"] != "http request" {
				t.Fatalf("unexpected record %v", rec)
			}
			if rec["status"] != float64(tt.status) || rec["path"] != tt.path {
				t.Fatalf("unexpected request attrs %v", rec)
			}
			draft, _ := rec["draft"].(string)
			if draft != tt.wantDraft {
				t.Fatalf("expected draft %q, got %q", tt.wantDraft, draft)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	out := &capture{}
	router := gin.New()
	router.Use(Recover(slog.New(slog.NewJSONHandler(out, nil))))
	router.GET("/", func(c *gin.Context) { panic("ledger corrupted") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if len(out.records) != 1 || out.records[0]["panic"] != "ledger corrupted" {
		t.Fatalf("expected panic to be logged, got %v", out.records)
	}
}

var _ io.Writer = (*capture)(nil)

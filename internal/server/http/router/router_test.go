package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salesorder/internal/app"
	"github.com/polkiloo/salesorder/internal/server/http/dto"
	testhelpers "github.com/polkiloo/salesorder/internal/test"
	"github.com/polkiloo/salesorder/internal/usecase"
)

func newEngine() *gin.Engine {
	logger := testhelpers.DiscardLogger()
	sessions := usecase.NewSessionUseCase(testhelpers.AcmeCatalog(), &testhelpers.JournalStub{}, logger)
	engine := Setup(app.NewDeskFacade(sessions), logger)
	gin.SetMode(gin.TestMode)
	return engine
}

func serve(engine *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	engine := newEngine()

	resp := serve(engine, http.MethodPost, "/api/drafts", "", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for start, got %d", resp.Code)
	}
	var draft dto.DraftResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	base := "/api/drafts/" + draft.ID

	steps := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, base, "", http.StatusOK},
		{http.MethodGet, base + "/customers", "", http.StatusOK},
		{http.MethodGet, base + "/items", "", http.StatusOK},
		{http.MethodPost, base + "/pickers/customer/open", "", http.StatusOK},
		{http.MethodPost, base + "/pickers/customer/close", "", http.StatusOK},
		{http.MethodPut, base + "/customer", `{"code":"C001"}`, http.StatusOK},
		{http.MethodDelete, base + "/customer", "", http.StatusOK},
		{http.MethodPut, base + "/customer", `{"code":"C001"}`, http.StatusOK},
		{http.MethodPut, base + "/header", `{"doc_date":"2024-05-01"}`, http.StatusOK},
		{http.MethodPost, base + "/lines/I1/toggle", "", http.StatusOK},
		{http.MethodPatch, base + "/lines/I1", `{"quantity":"2"}`, http.StatusOK},
		{http.MethodDelete, base + "/lines/I1", "", http.StatusOK},
		{http.MethodPost, base + "/lines/I1/toggle", "", http.StatusOK},
		{http.MethodPost, base + "/submit", "", http.StatusOK},
		{http.MethodGet, "/api/submissions", "", http.StatusOK},
		{http.MethodPost, base + "/lines/I1/toggle", "", http.StatusOK},
		{http.MethodDelete, base + "/lines", "", http.StatusOK},
		{http.MethodPost, base + "/submit", "", http.StatusUnprocessableEntity},
		{http.MethodPost, base + "/new", "", http.StatusOK},
		{http.MethodDelete, base, "", http.StatusNoContent},
		{http.MethodGet, base, "", http.StatusNotFound},
	}
	for _, s := range steps {
		if resp := serve(engine, s.method, s.path, s.body, nil); resp.Code != s.status {
			t.Fatalf("%s %s: expected status %d, got %d (%s)", s.method, s.path, s.status, resp.Code, resp.Body.String())
		}
	}
}

func TestSetupCompression(t *testing.T) {
	engine := newEngine()

	resp := serve(engine, http.MethodPost, "/api/drafts", "", map[string]string{"Accept-Encoding": "gzip"})
	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got headers %v", resp.Header())
	}
	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var draft dto.DraftResponse
	if err := json.NewDecoder(gz).Decode(&draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write([]byte(`{"code":"C001"}`))
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPut, "/api/drafts/"+draft.ID+"/customer", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected gzip request to be accepted, got %d", rec.Code)
	}
}

func TestSetupUnknownRoute(t *testing.T) {
	engine := newEngine()
	if resp := serve(engine, http.MethodGet, "/api/user/orders", "", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

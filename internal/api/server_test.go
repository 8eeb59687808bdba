package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appforge/appforge/internal/engine"
)

func newTestServer(t *testing.T) *APIServer {
	t.Helper()
	eng, err := engine.NewEngine(t.TempDir(), "0.1.0-test")
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return NewAPIServer(eng, 0)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandleGenerate(t *testing.T) {
	s := newTestServer(t)

	body := `{"description": "an online store with a shopping cart and stripe payment", "project_name": "shoply"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("expected success envelope, got %+v", resp)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected result object, got %T", resp.Data)
	}
	prompt, _ := data["prompt"].(string)
	if !strings.Contains(prompt, "shoply") {
		t.Errorf("expected project name rendered into prompt")
	}
	if strings.Contains(prompt, "{{") {
		t.Errorf("expected no unrendered tags in prompt")
	}
}

func TestHandleGenerateExplicitArchetype(t *testing.T) {
	s := newTestServer(t)

	body := `{"archetype": "Blog", "project_name": "inkwell"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	meta := data["metadata"].(map[string]interface{})
	if meta["archetype"] != "blog" {
		t.Errorf("expected forced archetype lowercased, got %v", meta["archetype"])
	}
}

func TestHandleGenerateRejectsEmptyBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing description and archetype, got %d", rec.Code)
	}
}

func TestHandleGenerateMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code == http.StatusOK {
		t.Error("expected non-200 for GET on generate endpoint")
	}
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)

	body := `{"description": "a personal blog where I publish weekly articles"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleAnalyze)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["archetype"] != "blog" {
		t.Errorf("expected blog archetype, got %v", data["archetype"])
	}
}

func TestHandleArchetypes(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/archetypes", nil)
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleArchetypes)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	list, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("expected array, got %T", resp.Data)
	}
	if len(list) != 5 {
		t.Errorf("expected 5 catalog entries, got %d", len(list))
	}
}

func TestHandlePreview(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/preview/ecommerce", nil)
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handlePreview)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	preview, _ := data["preview"].(string)
	if preview == "" {
		t.Error("expected non-empty preview text")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/preview/spaceship", nil)
	rec = httptest.NewRecorder()
	s.withMiddleware(s.handlePreview)(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown archetype, got %d", rec.Code)
	}
}

func TestHandleFeedback(t *testing.T) {
	s := newTestServer(t)

	body := `[{"variant_id": "ecommerce-expert-architecture", "rating": 5, "usage": "helpful"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleFeedback)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	bad := `[{"variant_id": "x", "rating": 9, "usage": "helpful"}]`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(bad))
	rec = httptest.NewRecorder()
	s.withMiddleware(s.handleFeedback)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range rating, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleHealth)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if data["version"] != "0.1.0-test" {
		t.Errorf("expected engine version in health payload, got %v", data["version"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()

	s.withMiddleware(s.handleGenerate)(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers on preflight response")
	}
}

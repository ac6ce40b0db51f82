package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/park285/pharmacist-relay-go/internal/config"
	medicinedomain "github.com/park285/pharmacist-relay-go/internal/domain/medicine"
	"github.com/park285/pharmacist-relay-go/internal/httperror"
	"github.com/park285/pharmacist-relay-go/internal/llm"
	"github.com/park285/pharmacist-relay-go/internal/metrics"
	"github.com/park285/pharmacist-relay-go/internal/middleware"
	"github.com/park285/pharmacist-relay-go/internal/usecase/medicine"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (llm.GenerateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return llm.GenerateResult{}, f.err
	}
	return llm.GenerateResult{Text: f.text, Model: "gemini-test"}, nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newTestRouter(t *testing.T, generator *fakeGenerator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prompts, err := medicinedomain.NewPrompts()
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	cfg := &config.Config{
		Gemini: config.GeminiConfig{APIKeys: []string{"test-key"}, Model: "gemini-test"},
		HTTP:   config.HTTPConfig{GzipEnabled: true},
	}
	service := medicine.New(generator, prompts, nil)

	router := NewRouter(cfg, nil, NewMedicineHandler(service, nil), NewStatsHandler(metrics.NewStore()))
	gin.SetMode(gin.TestMode)
	return router
}

func postQuestion(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, AnswerPath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnswerNormalizesModelText(t *testing.T) {
	generator := &fakeGenerator{text: "[ {medicine_name: Aspirin,\n\n  history: Bayer 1897} ]"}
	router := newTestRouter(t, generator)

	resp := postQuestion(router, `{"question":"Aspirin"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload AnswerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Response != " {medicine_name: Aspirin, history: Bayer 1897} " {
		t.Fatalf("unexpected response: %q", payload.Response)
	}
	if generator.Calls() != 1 {
		t.Fatalf("expected exactly one model call, got %d", generator.Calls())
	}
	if !strings.Contains(generator.prompts[0], "for this medicine:Aspirin.Output in dictionary") {
		t.Fatalf("question not embedded in prompt: %s", generator.prompts[0])
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAnswerEmptyQuestionIsAccepted(t *testing.T) {
	generator := &fakeGenerator{text: ""}
	router := newTestRouter(t, generator)

	resp := postQuestion(router, `{"question":""}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty question, got %d", resp.Code)
	}
	var payload AnswerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Response != "" {
		t.Fatalf("expected empty response, got %q", payload.Response)
	}
	if generator.Calls() != 1 {
		t.Fatalf("expected one model call, got %d", generator.Calls())
	}
}

func TestAnswerMissingQuestion(t *testing.T) {
	cases := map[string]string{
		"missing field": `{}`,
		"null value":    `{"question":null}`,
		"wrong type":    `{"question":42}`,
		"not json":      `question=Aspirin`,
		"empty body":    ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			generator := &fakeGenerator{text: "unused"}
			router := newTestRouter(t, generator)

			resp := postQuestion(router, body)
			if resp.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
			}
			if generator.Calls() != 0 {
				t.Fatalf("expected no model call, got %d", generator.Calls())
			}

			var payload httperror.ErrorResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if payload.ErrorCode != string(httperror.ErrorCodeValidation) {
				t.Fatalf("unexpected error code: %s", payload.ErrorCode)
			}
		})
	}
}

func TestAnswerInvocationFailure(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("Error 400, Message: API key not valid")}
	router := newTestRouter(t, generator)

	resp := postQuestion(router, `{"question":"Aspirin"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var payload httperror.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if payload.Detail != "Error 400, Message: API key not valid" {
		t.Fatalf("expected detail to equal upstream text, got %q", payload.Detail)
	}
	if payload.ErrorCode != string(httperror.ErrorCodeLLM) {
		t.Fatalf("unexpected error code: %s", payload.ErrorCode)
	}
	if payload.RequestID == nil || *payload.RequestID == "" {
		t.Fatalf("expected request id in error body")
	}
}

func TestAnswerNoCaching(t *testing.T) {
	generator := &fakeGenerator{text: "ok"}
	router := newTestRouter(t, generator)

	for i := 0; i < 2; i++ {
		if resp := postQuestion(router, `{"question":"Aspirin"}`); resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}
	if generator.Calls() != 2 {
		t.Fatalf("expected two model calls for two requests, got %d", generator.Calls())
	}
}

func TestAnswerGzipNegotiated(t *testing.T) {
	generator := &fakeGenerator{text: "ok"}
	router := newTestRouter(t, generator)

	req := httptest.NewRequest(http.MethodPost, AnswerPath, bytes.NewBufferString(`{"question":"Aspirin"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", resp.Header().Get("Content-Encoding"))
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), string(httperror.ErrorCodeNotFound)) {
		t.Fatalf("expected not found code in body: %s", resp.Body.String())
	}
}

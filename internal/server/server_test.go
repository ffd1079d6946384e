package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmegen/internal/shared/util"
)

type stubGenerator struct {
	text      string
	err       error
	prompt    string
	maxLength int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	s.prompt = prompt
	s.maxLength = maxLength
	return s.text, s.err
}

func postGenerate(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleGenerate(rec, req)
	return rec
}

func TestGenerateSuccess(t *testing.T) {
	gen := &stubGenerator{text: "a generated readme"}
	srv := New(":0", gen, nil)

	rec := postGenerate(t, srv, `{"prompt": "describe the project"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp generateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "a generated readme", resp.GeneratedText)
	assert.Equal(t, "describe the project", gen.prompt)
	assert.Equal(t, defaultMaxLength, gen.maxLength, "max_length must default to 300")
}

func TestGenerateExplicitMaxLength(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	srv := New(":0", gen, nil)

	rec := postGenerate(t, srv, `{"prompt": "p", "max_length": 42}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, gen.maxLength)
}

func TestGenerateFailureIsStructured(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("model unavailable")}
	srv := New(":0", gen, nil)

	rec := postGenerate(t, srv, `{"prompt": "p"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "model unavailable")
}

func TestGenerateRejectsBadJSON(t *testing.T) {
	srv := New(":0", &stubGenerator{}, nil)

	rec := postGenerate(t, srv, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGenerateRejectsWrongMethod(t *testing.T) {
	srv := New(":0", &stubGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	rec := httptest.NewRecorder()
	srv.handleGenerate(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGenerateThrottled(t *testing.T) {
	// A nearly empty bucket: the first request drains it, the second is
	// rejected.
	limiter := util.NewLimiter(0.001, 1)
	srv := New(":0", &stubGenerator{text: "ok"}, limiter)

	first := postGenerate(t, srv, `{"prompt": "p"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postGenerate(t, srv, `{"prompt": "p"}`)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "rate limit")
}

func TestRecoveredHandler(t *testing.T) {
	srv := New(":0", &stubGenerator{}, nil)
	panicking := srv.recovered(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	rec := httptest.NewRecorder()
	panicking(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "internal server error", resp.Error)
}

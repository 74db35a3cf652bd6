package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
	"github.com/genetic-risk-server/internal/risk"
	"github.com/genetic-risk-server/internal/session"
	"github.com/genetic-risk-server/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &domain.Config{
		Server: domain.ServerConfig{Host: "127.0.0.1", Port: 0},
		Store: domain.StoreConfig{
			Backend:        "memory",
			SessionTTL:     time.Hour,
			ResumeTokenTTL: 10 * time.Minute,
		},
		Logging: domain.LoggingConfig{Level: "error"},
	}

	bank := questionbank.NewBank(logger)
	engine := risk.NewEngine(logger, bank)
	manager, err := session.NewManager(logger, store.NewMemoryStore(), bank, questionbank.NewSelector(bank), engine, cfg.Store)
	require.NoError(t, err)

	return NewServer(cfg, logger, manager, bank)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createSession(t *testing.T, handler http.Handler, variant domain.Variant) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions", jsonBody{
		"questionnaire_type": variant,
		"creator_id":         "clinician-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		SessionID string `json:"session_id"`
	}
	decode(t, rec, &created)
	require.NotEmpty(t, created.SessionID)
	return created.SessionID
}

type jsonBody = map[string]interface{}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCreateSessionEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/sessions", jsonBody{
		"questionnaire_type": "genetic_screening",
		"subject_id":         "subject-1",
		"creator_id":         "clinician-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Session
	decode(t, rec, &created)
	assert.Equal(t, domain.GENETIC_SCREENING, created.Variant)
	assert.Equal(t, 15, created.EstimatedQuestions)
}

func TestCreateSessionRejectsBadVariant(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/sessions", jsonBody{
		"questionnaire_type": "tarot",
		"creator_id":         "clinician-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrCodeValidation)
}

func TestQuestionFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	id := createSession(t, handler, domain.GENETIC_SCREENING)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var next domain.NextQuestion
	decode(t, rec, &next)
	require.False(t, next.Complete)
	assert.Equal(t, "demo_age", next.Question.ID)
	assert.Equal(t, 1, next.QuestionNumber)

	// Bare JSON answer values are accepted alongside the tagged form.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/responses", jsonBody{
		"question_id": "demo_age",
		"response":    42,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+id+"/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var progress domain.Progress
	decode(t, rec, &progress)
	assert.Equal(t, 1, progress.QuestionsAnswered)
}

func TestRecordResponseTypeMismatchOverHTTP(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	id := createSession(t, handler, domain.GENETIC_SCREENING)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/responses", jsonBody{
		"question_id": "demo_age",
		"response":    true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrCodeValidation)
}

func TestPauseResumeOverHTTP(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	id := createSession(t, handler, domain.GENETIC_SCREENING)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/pause", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var receipt domain.PauseReceipt
	decode(t, rec, &receipt)
	require.NotEmpty(t, receipt.ResumeToken)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/resume", jsonBody{
		"resume_token": "bogus",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrCodeAuthorization)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/resume", jsonBody{
		"resume_token": receipt.ResumeToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resumed domain.Session
	decode(t, rec, &resumed)
	assert.False(t, resumed.Paused)
}

func TestResultsNotReadyOverHTTP(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	id := createSession(t, handler, domain.GENETIC_SCREENING)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+id+"/results", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrCodeState)
}

func TestUnknownSessionOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/sessions/missing/progress", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrCodeNotFound)
}

func TestBrowseQuestionsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet,
		"/api/v1/questions?questionnaire_type=genetic_screening&category=family_history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Count     int                         `json:"count"`
		Questions []domain.QuestionDefinition `json:"questions"`
	}
	decode(t, rec, &payload)
	assert.Greater(t, payload.Count, 0)
	for _, q := range payload.Questions {
		assert.Equal(t, domain.CATEGORY_FAMILY_HISTORY, q.Category)
	}
}

func TestValidateBankEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/bank/validate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.BankValidationReport
	decode(t, rec, &report)
	assert.True(t, report.Valid, "built-in catalogue must validate cleanly: %v", report.Issues)
	assert.Greater(t, report.TotalQuestions, 0)
}

func TestRecommendationsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/recommendations", jsonBody{
		"family_cancer_history": true,
		"lifestyle_concerns":    true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Recommendations []domain.VariantRecommendation `json:"recommendations"`
	}
	decode(t, rec, &payload)
	require.Len(t, payload.Recommendations, 3)
	assert.Equal(t, domain.COMPREHENSIVE_ASSESSMENT, payload.Recommendations[2].Variant)
}

func TestRateLimiting(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &domain.Config{
		Store: domain.StoreConfig{
			Backend:        "memory",
			SessionTTL:     time.Hour,
			ResumeTokenTTL: 10 * time.Minute,
		},
		Logging: domain.LoggingConfig{Level: "error"},
		RateLimit: domain.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             2,
		},
	}

	bank := questionbank.NewBank(logger)
	engine := risk.NewEngine(logger, bank)
	manager, err := session.NewManager(logger, store.NewMemoryStore(), bank, questionbank.NewSelector(bank), engine, cfg.Store)
	require.NoError(t, err)
	s := NewServer(cfg, logger, manager, bank)

	limited := false
	for i := 0; i < 5; i++ {
		rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "burst of requests from one client must trip the limiter")
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))

	// A missing id is generated server side.
	rec = doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCompletionOverHTTP(t *testing.T) {
	s := newTestServer(t)
	handler := s.Handler()

	id := createSession(t, handler, domain.EPIGENETIC_ASSESSMENT)

	for i := 0; i < 100; i++ {
		rec := doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+id+"/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var next domain.NextQuestion
		decode(t, rec, &next)
		if next.Complete {
			rec = doJSON(t, handler, http.MethodGet, "/api/v1/sessions/"+id+"/results", nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var results domain.AssessmentResults
			decode(t, rec, &results)
			assert.Equal(t, id, results.SessionID)
			assert.True(t, results.ClinicalUrgency.IsValid())
			return
		}

		answer := answerPayload(next.Question)
		rec = doJSON(t, handler, http.MethodPost, "/api/v1/sessions/"+id+"/responses", jsonBody{
			"question_id": next.Question.ID,
			"response":    answer,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	t.Fatal("session did not complete")
}

// answerPayload picks a bare JSON value valid for the question.
func answerPayload(q *domain.QuestionDefinition) interface{} {
	switch q.Type {
	case domain.BOOLEAN:
		return false
	case domain.NUMERIC:
		return 40
	case domain.MULTIPLE_CHOICE:
		return q.Options[0]
	case domain.MULTI_SELECT:
		for _, opt := range q.Options {
			if opt == "None of the above" {
				return []string{opt}
			}
		}
		return []string{q.Options[0]}
	default:
		return fmt.Sprintf("answer for %s", q.ID)
	}
}

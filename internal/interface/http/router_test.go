package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/config"
	apperrors "github.com/Sanat-Jha/Truely-FAQ/pkg/errors"
)

func TestRouter_SubmitQuestionSuccess(t *testing.T) {
	siteID := uuid.New()
	svc := &stubService{
		submitFn: func(ctx context.Context, gotSite uuid.UUID, email, text string) (consolidation.Question, error) {
			require.Equal(t, siteID, gotSite)
			require.Equal(t, "visitor@example.com", email)
			require.Equal(t, "where is my order", text)
			return consolidation.Question{ID: uuid.New(), SiteID: gotSite, SubmitterEmail: email, Text: text}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/sites/"+siteID.String()+"/questions",
		`{"email":"visitor@example.com","question":"where is my order"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got consolidation.Question
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, siteID, got.SiteID)
}

func TestRouter_SubmitQuestionBadSiteID(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/sites/not-a-uuid/questions",
		`{"email":"a@b.c","question":"q"}`, newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_SubmitQuestionMissingFields(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/sites/"+uuid.NewString()+"/questions",
		`{"email":"a@b.c"}`, newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_AnswerQuestionSuccess(t *testing.T) {
	questionID := uuid.New()
	faq := consolidation.FAQ{ID: uuid.New(), QuestionText: "where is my order", SimilarityCount: 2, Visible: true}
	svc := &stubService{
		answerFn: func(ctx context.Context, gotID uuid.UUID, text string) (consolidation.Answer, consolidation.Result, error) {
			require.Equal(t, questionID, gotID)
			require.Equal(t, "check the tracking page", text)
			answer := consolidation.Answer{ID: uuid.New(), QuestionID: gotID, Text: text}
			return answer, consolidation.Result{Outcome: consolidation.OutcomeCreatedNew, FAQ: &faq}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/questions/"+questionID.String()+"/answer",
		`{"answer":"check the tracking page"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Answer        consolidation.Answer `json:"answer"`
		Consolidation consolidation.Result `json:"consolidation"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, questionID, body.Answer.QuestionID)
	require.Equal(t, consolidation.OutcomeCreatedNew, body.Consolidation.Outcome)
	require.NotNil(t, body.Consolidation.FAQ)
}

func TestRouter_AnswerQuestionConflict(t *testing.T) {
	svc := &stubService{
		answerFn: func(context.Context, uuid.UUID, string) (consolidation.Answer, consolidation.Result, error) {
			return consolidation.Answer{}, consolidation.Result{}, apperrors.Wrap("conflict", "question already has an answer", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/questions/"+uuid.NewString()+"/answer",
		`{"answer":"too late"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusConflict, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "conflict", errBody["error"]["code"])
}

func TestRouter_ListFAQs(t *testing.T) {
	siteID := uuid.New()
	svc := &stubService{
		listFn: func(ctx context.Context, gotSite uuid.UUID) ([]consolidation.FAQ, error) {
			require.Equal(t, siteID, gotSite)
			return []consolidation.FAQ{{ID: uuid.New(), SiteID: gotSite, QuestionText: "q", SimilarityCount: 3, Visible: true}}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/sites/"+siteID.String()+"/faqs", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		FAQs []consolidation.FAQ `json:"faqs"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.FAQs, 1)
}

func TestRouter_SetVisibilityNotFound(t *testing.T) {
	svc := &stubService{
		visibilityFn: func(context.Context, uuid.UUID, bool) (consolidation.FAQ, error) {
			return consolidation.FAQ{}, apperrors.Wrap("not_found", "faq does not exist", nil)
		},
	}

	recorder := performRequest(http.MethodPatch, "/api/v1/faqs/"+uuid.NewString()+"/visibility",
		`{"visible":false}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_SetVisibilityRequiresBool(t *testing.T) {
	recorder := performRequest(http.MethodPatch, "/api/v1/faqs/"+uuid.NewString()+"/visibility",
		`{}`, newRouterUnderTest(t, &stubService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc consolidation.Service) *http.Server {
	t.Helper()
	handler := NewHandler(svc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubService struct {
	submitFn     func(ctx context.Context, siteID uuid.UUID, email, text string) (consolidation.Question, error)
	answerFn     func(ctx context.Context, questionID uuid.UUID, text string) (consolidation.Answer, consolidation.Result, error)
	listFn       func(ctx context.Context, siteID uuid.UUID) ([]consolidation.FAQ, error)
	visibilityFn func(ctx context.Context, faqID uuid.UUID, visible bool) (consolidation.FAQ, error)
}

func (s *stubService) SubmitQuestion(ctx context.Context, siteID uuid.UUID, email, text string) (consolidation.Question, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, siteID, email, text)
	}
	return consolidation.Question{}, nil
}

func (s *stubService) AnswerQuestion(ctx context.Context, questionID uuid.UUID, text string) (consolidation.Answer, consolidation.Result, error) {
	if s.answerFn != nil {
		return s.answerFn(ctx, questionID, text)
	}
	return consolidation.Answer{}, consolidation.Result{Outcome: consolidation.OutcomeNone}, nil
}

func (s *stubService) ListPublicFAQs(ctx context.Context, siteID uuid.UUID) ([]consolidation.FAQ, error) {
	if s.listFn != nil {
		return s.listFn(ctx, siteID)
	}
	return nil, nil
}

func (s *stubService) SetFAQVisibility(ctx context.Context, faqID uuid.UUID, visible bool) (consolidation.FAQ, error) {
	if s.visibilityFn != nil {
		return s.visibilityFn(ctx, faqID, visible)
	}
	return consolidation.FAQ{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

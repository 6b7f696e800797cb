package consolidation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/similarity"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/faqcache"
	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/faqrepo"
	apperrors "github.com/Sanat-Jha/Truely-FAQ/pkg/errors"
)

func newServiceUnderTest(provider *similarity.Provider) (consolidation.Service, *faqrepo.MemoryRepository, *faqcache.MemoryCache) {
	repo := faqrepo.NewMemoryRepository()
	cache := faqcache.NewMemoryCache()
	cfg := testConfig()
	engine := consolidation.NewEngine(cfg, repo, repo, cache, provider, testLogger())
	svc := consolidation.NewService(cfg, repo, repo, cache, engine, testLogger())
	return svc, repo, cache
}

func TestService_SubmitQuestionValidation(t *testing.T) {
	svc, _, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	_, err := svc.SubmitQuestion(ctx, siteID, "visitor@example.com", "  ")
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.SubmitQuestion(ctx, siteID, "", "a real question")
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	question, err := svc.SubmitQuestion(ctx, siteID, "visitor@example.com", "  a real question  ")
	require.NoError(t, err)
	require.Equal(t, "a real question", question.Text)
	require.Equal(t, siteID, question.SiteID)
	require.False(t, question.Answered)
}

func TestService_AnswerQuestion(t *testing.T) {
	svc, repo, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	question, err := svc.SubmitQuestion(ctx, siteID, "visitor@example.com", "how do i export my data")
	require.NoError(t, err)

	answer, result, err := svc.AnswerQuestion(ctx, question.ID, "go to settings > export")
	require.NoError(t, err)
	require.Equal(t, question.ID, answer.QuestionID)
	require.Equal(t, consolidation.OutcomeNone, result.Outcome)

	stored, found, err := repo.Get(ctx, question.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, stored.Answered)
}

func TestService_AnswerQuestionConflict(t *testing.T) {
	svc, _, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()

	question, err := svc.SubmitQuestion(ctx, uuid.New(), "visitor@example.com", "how do i export my data")
	require.NoError(t, err)

	_, _, err = svc.AnswerQuestion(ctx, question.ID, "first answer")
	require.NoError(t, err)

	_, _, err = svc.AnswerQuestion(ctx, question.ID, "second answer")
	require.True(t, apperrors.IsCode(err, "conflict"))
}

func TestService_AnswerQuestionNotFound(t *testing.T) {
	svc, _, _ := newServiceUnderTest(statisticalProvider())

	_, _, err := svc.AnswerQuestion(context.Background(), uuid.New(), "an answer")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestService_AnswerTriggersConsolidation(t *testing.T) {
	svc, _, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	first, err := svc.SubmitQuestion(ctx, siteID, "a@example.com", "where is my order")
	require.NoError(t, err)
	second, err := svc.SubmitQuestion(ctx, siteID, "b@example.com", "where is my order")
	require.NoError(t, err)

	_, result, err := svc.AnswerQuestion(ctx, first.ID, "check the tracking page")
	require.NoError(t, err)
	require.Equal(t, consolidation.OutcomeNone, result.Outcome)

	_, result, err = svc.AnswerQuestion(ctx, second.ID, "check the tracking page")
	require.NoError(t, err)
	require.Equal(t, consolidation.OutcomeCreatedNew, result.Outcome)
	require.NotNil(t, result.FAQ)
	require.Equal(t, 2, result.FAQ.SimilarityCount)
}

func TestService_AnswerSurvivesDegradedProvider(t *testing.T) {
	provider := similarity.NewUnavailableProvider("model init failed", testLogger())
	svc, repo, _ := newServiceUnderTest(provider)
	ctx := context.Background()

	question, err := svc.SubmitQuestion(ctx, uuid.New(), "visitor@example.com", "where is my order")
	require.NoError(t, err)

	answer, result, err := svc.AnswerQuestion(ctx, question.ID, "check the tracking page")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, answer.ID)
	require.Equal(t, consolidation.OutcomeNone, result.Outcome)

	stored, _, err := repo.Get(ctx, question.ID)
	require.NoError(t, err)
	require.True(t, stored.Answered)
}

func TestService_ListPublicFAQsFiltersHidden(t *testing.T) {
	svc, repo, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	visible := consolidation.FAQ{ID: uuid.New(), SiteID: siteID, QuestionText: "visible", SimilarityCount: 5, Visible: true, CreatedAt: time.Now().UTC()}
	hidden := consolidation.FAQ{ID: uuid.New(), SiteID: siteID, QuestionText: "hidden", SimilarityCount: 9, Visible: false, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Insert(ctx, visible))
	require.NoError(t, repo.Insert(ctx, hidden))

	faqs, err := svc.ListPublicFAQs(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, faqs, 1)
	require.Equal(t, visible.ID, faqs[0].ID)
}

func TestService_ListPublicFAQsIsCached(t *testing.T) {
	svc, repo, cache := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	faq := consolidation.FAQ{ID: uuid.New(), SiteID: siteID, QuestionText: "first", SimilarityCount: 3, Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Insert(ctx, faq))

	faqs, err := svc.ListPublicFAQs(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, faqs, 1)

	// a write that bypasses the service is invisible until invalidation
	late := consolidation.FAQ{ID: uuid.New(), SiteID: siteID, QuestionText: "late", SimilarityCount: 1, Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Insert(ctx, late))

	faqs, err = svc.ListPublicFAQs(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, faqs, 1)

	require.NoError(t, cache.Invalidate(ctx, siteID))
	faqs, err = svc.ListPublicFAQs(ctx, siteID)
	require.NoError(t, err)
	require.Len(t, faqs, 2)
}

func TestService_SetFAQVisibility(t *testing.T) {
	svc, repo, _ := newServiceUnderTest(statisticalProvider())
	ctx := context.Background()
	siteID := uuid.New()

	faq := consolidation.FAQ{ID: uuid.New(), SiteID: siteID, QuestionText: "toggle me", SimilarityCount: 2, Visible: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Insert(ctx, faq))

	updated, err := svc.SetFAQVisibility(ctx, faq.ID, false)
	require.NoError(t, err)
	require.False(t, updated.Visible)

	faqs, err := svc.ListPublicFAQs(ctx, siteID)
	require.NoError(t, err)
	require.Empty(t, faqs)

	_, err = svc.SetFAQVisibility(ctx, uuid.New(), true)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

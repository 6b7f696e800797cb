package consolidation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/similarity"
	apperrors "github.com/Sanat-Jha/Truely-FAQ/pkg/errors"
	"github.com/Sanat-Jha/Truely-FAQ/pkg/util"
)

// Config holds the consolidation decision knobs, read once at startup.
type Config struct {
	// Threshold is the minimum similarity score for two questions to be
	// considered equivalent.
	Threshold float64
	// MinSimilarForNewFAQ is how many similar previously-answered questions
	// a new question needs before it is promoted to an FAQ.
	MinSimilarForNewFAQ int
	// CacheTTL bounds the public FAQ listing cache.
	CacheTTL time.Duration
}

// Engine decides, for each newly answered question, whether it reinforces an
// existing FAQ or is frequent enough to become a new one.
type Engine struct {
	cfg       Config
	questions QuestionRepository
	faqs      FAQRepository
	cache     PublicCache
	provider  *similarity.Provider
	logger    *slog.Logger
	locks     *siteLocks
	now       func() time.Time
}

// NewEngine wires up the consolidation engine.
func NewEngine(cfg Config, questions QuestionRepository, faqs FAQRepository, cache PublicCache, provider *similarity.Provider, logger *slog.Logger) *Engine {
	if cfg.MinSimilarForNewFAQ < 1 {
		cfg.MinSimilarForNewFAQ = 1
	}
	return &Engine{
		cfg:       cfg,
		questions: questions,
		faqs:      faqs,
		cache:     cache,
		provider:  provider,
		logger:    logger.With("component", "consolidation.engine"),
		locks:     newSiteLocks(),
		now:       util.NowUTC,
	}
}

// OnQuestionAnswered runs the consolidation state machine for the question.
// It is idempotent: re-invocation for an already-processed question is a
// guaranteed no-op. The per-site lock is held across the whole
// read-decide-write sequence; nothing is mutated before a decision is final.
func (e *Engine) OnQuestionAnswered(ctx context.Context, questionID uuid.UUID) (Result, error) {
	none := Result{Outcome: OutcomeNone}

	question, found, err := e.questions.Get(ctx, questionID)
	if err != nil {
		return none, apperrors.Wrap("repo_error", "load question failed", err)
	}
	if !found {
		return none, apperrors.Wrap("not_found", "question does not exist", nil)
	}

	lock := e.locks.forSite(question.SiteID)
	lock.Lock()
	defer lock.Unlock()

	// reload under the lock: a concurrent run may have attached it already
	question, found, err = e.questions.Get(ctx, questionID)
	if err != nil {
		return none, apperrors.Wrap("repo_error", "load question failed", err)
	}
	if !found {
		return none, apperrors.Wrap("not_found", "question does not exist", nil)
	}
	if !question.Answered {
		e.logger.Debug("question not answered yet, skipping", "question_id", question.ID)
		return none, nil
	}
	if question.FAQID != nil {
		e.logger.Debug("question already consolidated, skipping", "question_id", question.ID, "faq_id", *question.FAQID)
		return none, nil
	}
	if !e.provider.Available() {
		return none, nil
	}

	if result, done, err := e.matchExisting(ctx, question); err != nil || done {
		return result, err
	}
	return e.promoteIfFrequent(ctx, question)
}

func (e *Engine) matchExisting(ctx context.Context, question Question) (Result, bool, error) {
	none := Result{Outcome: OutcomeNone}

	refs, err := e.faqs.ListForSite(ctx, question.SiteID)
	if err != nil {
		return none, false, apperrors.Wrap("repo_error", "load site faqs failed", err)
	}
	if len(refs) == 0 {
		return none, false, nil
	}

	texts := make([]string, len(refs))
	for i, ref := range refs {
		texts[i] = ref.Text
	}
	index := e.provider.BestMatch(ctx, question.Text, texts, e.cfg.Threshold)
	if index < 0 {
		return none, false, nil
	}

	matched := refs[index]
	if err := e.faqs.IncrementCount(ctx, matched.ID, 1); err != nil {
		return none, false, apperrors.Wrap("repo_error", "increment faq count failed", err)
	}
	if err := e.questions.AttachToFAQ(ctx, question.ID, matched.ID); err != nil {
		return none, false, apperrors.Wrap("repo_error", "attach question failed", err)
	}
	e.invalidateCache(ctx, question.SiteID)

	faq, found, err := e.faqs.Find(ctx, matched.ID)
	if err != nil {
		return none, false, apperrors.Wrap("repo_error", "reload faq failed", err)
	}
	if !found {
		return none, false, apperrors.Wrap("not_found", "faq disappeared after increment", nil)
	}
	e.logger.Info("question reinforced existing faq", "question_id", question.ID, "faq_id", faq.ID, "similarity_count", faq.SimilarityCount)
	return Result{Outcome: OutcomeMatchedExisting, FAQ: &faq}, true, nil
}

// promoteIfFrequent compares the question against the site's other answered
// questions only. Duplicates already merged into FAQs do not count, which can
// undercount true frequency once FAQs accumulate; kept deliberately.
func (e *Engine) promoteIfFrequent(ctx context.Context, question Question) (Result, error) {
	none := Result{Outcome: OutcomeNone}

	others, err := e.questions.ListOtherAnswered(ctx, question.SiteID, question.ID)
	if err != nil {
		return none, apperrors.Wrap("repo_error", "load answered questions failed", err)
	}
	if len(others) == 0 {
		return none, nil
	}

	texts := make([]string, len(others))
	for i, other := range others {
		texts[i] = other.Text
	}
	frequent, count := e.provider.FrequencyCount(ctx, question.Text, texts, e.cfg.Threshold)
	if !frequent || count < e.cfg.MinSimilarForNewFAQ {
		return none, nil
	}

	answer, found, err := e.questions.GetAnswer(ctx, question.ID)
	if err != nil {
		return none, apperrors.Wrap("repo_error", "load answer failed", err)
	}
	if !found {
		return none, apperrors.Wrap("not_found", "answer missing for answered question", nil)
	}

	now := e.now()
	faq := FAQ{
		ID:           uuid.New(),
		SiteID:       question.SiteID,
		QuestionText: question.Text,
		AnswerText:   answer.Text,
		// +1 accounts for the triggering question itself
		SimilarityCount: count + 1,
		Visible:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.faqs.Insert(ctx, faq); err != nil {
		return none, apperrors.Wrap("repo_error", "create faq failed", err)
	}
	if err := e.questions.AttachToFAQ(ctx, question.ID, faq.ID); err != nil {
		return none, apperrors.Wrap("repo_error", "attach question failed", err)
	}
	e.invalidateCache(ctx, question.SiteID)

	e.logger.Info("question promoted to new faq", "question_id", question.ID, "faq_id", faq.ID, "similarity_count", faq.SimilarityCount)
	return Result{Outcome: OutcomeCreatedNew, FAQ: &faq}, nil
}

func (e *Engine) invalidateCache(ctx context.Context, siteID uuid.UUID) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(ctx, siteID); err != nil {
		e.logger.Warn("public faq cache invalidation failed", "site_id", siteID, "error", err)
	}
}

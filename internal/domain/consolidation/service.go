package consolidation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Sanat-Jha/Truely-FAQ/pkg/errors"
	"github.com/Sanat-Jha/Truely-FAQ/pkg/util"
)

// Service is the application-facing surface around the engine: question
// intake, answering, and the public FAQ listing.
type Service interface {
	SubmitQuestion(ctx context.Context, siteID uuid.UUID, email, text string) (Question, error)
	// AnswerQuestion stores the answer, marks the question answered, and runs
	// the consolidation engine synchronously.
	AnswerQuestion(ctx context.Context, questionID uuid.UUID, text string) (Answer, Result, error)
	ListPublicFAQs(ctx context.Context, siteID uuid.UUID) ([]FAQ, error)
	SetFAQVisibility(ctx context.Context, faqID uuid.UUID, visible bool) (FAQ, error)
}

type service struct {
	cfg       Config
	questions QuestionRepository
	faqs      FAQRepository
	cache     PublicCache
	engine    *Engine
	logger    *slog.Logger
}

// NewService wires up the consolidation application service.
func NewService(cfg Config, questions QuestionRepository, faqs FAQRepository, cache PublicCache, engine *Engine, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		questions: questions,
		faqs:      faqs,
		cache:     cache,
		engine:    engine,
		logger:    logger.With("component", "consolidation.service"),
	}
}

func (s *service) SubmitQuestion(ctx context.Context, siteID uuid.UUID, email, text string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, apperrors.Wrap("invalid_input", "question text cannot be empty", nil)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return Question{}, apperrors.Wrap("invalid_input", "submitter email cannot be empty", nil)
	}

	now := util.NowUTC()
	question := Question{
		ID:             uuid.New(),
		SiteID:         siteID,
		SubmitterEmail: email,
		Text:           text,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return Question{}, apperrors.Wrap("repo_error", "store question failed", err)
	}
	return question, nil
}

func (s *service) AnswerQuestion(ctx context.Context, questionID uuid.UUID, text string) (Answer, Result, error) {
	none := Result{Outcome: OutcomeNone}

	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, none, apperrors.Wrap("invalid_input", "answer text cannot be empty", nil)
	}

	question, found, err := s.questions.Get(ctx, questionID)
	if err != nil {
		return Answer{}, none, apperrors.Wrap("repo_error", "load question failed", err)
	}
	if !found {
		return Answer{}, none, apperrors.Wrap("not_found", "question does not exist", nil)
	}
	if question.Answered {
		return Answer{}, none, apperrors.Wrap("conflict", "question already has an answer", nil)
	}

	answer := Answer{
		ID:         uuid.New(),
		QuestionID: question.ID,
		Text:       text,
		CreatedAt:  util.NowUTC(),
	}
	if err := s.questions.CreateAnswer(ctx, answer); err != nil {
		return Answer{}, none, apperrors.Wrap("repo_error", "store answer failed", err)
	}

	// consolidation failures must never fail the answer submission
	result, err := s.engine.OnQuestionAnswered(ctx, question.ID)
	if err != nil {
		s.logger.Warn("consolidation failed after answer", "question_id", question.ID, "error", err)
		result = none
	}
	return answer, result, nil
}

func (s *service) ListPublicFAQs(ctx context.Context, siteID uuid.UUID) ([]FAQ, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, siteID)
		if err != nil {
			s.logger.Warn("public faq cache lookup failed", "site_id", siteID, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	faqs, err := s.faqs.ListVisible(ctx, siteID)
	if err != nil {
		return nil, apperrors.Wrap("repo_error", "load visible faqs failed", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, siteID, faqs, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("public faq cache save failed", "site_id", siteID, "error", err)
		}
	}
	return faqs, nil
}

func (s *service) SetFAQVisibility(ctx context.Context, faqID uuid.UUID, visible bool) (FAQ, error) {
	faq, found, err := s.faqs.SetVisibility(ctx, faqID, visible)
	if err != nil {
		return FAQ{}, apperrors.Wrap("repo_error", "update faq visibility failed", err)
	}
	if !found {
		return FAQ{}, apperrors.Wrap("not_found", "faq does not exist", nil)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, faq.SiteID); err != nil {
			s.logger.Warn("public faq cache invalidation failed", "site_id", faq.SiteID, "error", err)
		}
	}
	return faq, nil
}

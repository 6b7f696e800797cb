package faqrepo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
)

// MemoryRepository keeps questions, answers, and FAQs in process memory. It
// backs tests and dev runs without Postgres.
type MemoryRepository struct {
	mu            sync.RWMutex
	questions     map[uuid.UUID]consolidation.Question
	questionOrder []uuid.UUID
	answers       map[uuid.UUID]consolidation.Answer
	faqs          map[uuid.UUID]consolidation.FAQ
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		questions: make(map[uuid.UUID]consolidation.Question),
		answers:   make(map[uuid.UUID]consolidation.Answer),
		faqs:      make(map[uuid.UUID]consolidation.FAQ),
	}
}

// Create implements consolidation.QuestionRepository.
func (r *MemoryRepository) Create(_ context.Context, question consolidation.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[question.ID] = question
	r.questionOrder = append(r.questionOrder, question.ID)
	return nil
}

// Get implements consolidation.QuestionRepository.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (consolidation.Question, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	question, ok := r.questions[id]
	return question, ok, nil
}

// CreateAnswer stores the answer and flips the question's answered flag. A
// second answer for the same question is rejected, matching the unique
// question_id constraint in Postgres.
func (r *MemoryRepository) CreateAnswer(_ context.Context, answer consolidation.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.answers[answer.QuestionID]; exists {
		return errors.New("question already has an answer")
	}
	r.answers[answer.QuestionID] = answer
	if question, ok := r.questions[answer.QuestionID]; ok {
		question.Answered = true
		question.UpdatedAt = answer.CreatedAt
		r.questions[answer.QuestionID] = question
	}
	return nil
}

// GetAnswer implements consolidation.QuestionRepository.
func (r *MemoryRepository) GetAnswer(_ context.Context, questionID uuid.UUID) (consolidation.Answer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	answer, ok := r.answers[questionID]
	return answer, ok, nil
}

// ListOtherAnswered returns answered questions for the site in creation
// order, excluding the given one.
func (r *MemoryRepository) ListOtherAnswered(_ context.Context, siteID, exclude uuid.UUID) ([]consolidation.QuestionRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]consolidation.QuestionRef, 0)
	for _, id := range r.questionOrder {
		question := r.questions[id]
		if question.SiteID != siteID || question.ID == exclude || !question.Answered {
			continue
		}
		refs = append(refs, consolidation.QuestionRef{ID: question.ID, Text: question.Text})
	}
	return refs, nil
}

// AttachToFAQ records the FAQ reference; an already-attached question keeps
// its original FAQ.
func (r *MemoryRepository) AttachToFAQ(_ context.Context, questionID, faqID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[questionID]
	if !ok || question.FAQID != nil {
		return nil
	}
	ref := faqID
	question.FAQID = &ref
	question.UpdatedAt = time.Now().UTC()
	r.questions[questionID] = question
	return nil
}

// ListForSite implements consolidation.FAQRepository.
func (r *MemoryRepository) ListForSite(_ context.Context, siteID uuid.UUID) ([]consolidation.FAQRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ordered := r.siteFAQsLocked(siteID)
	refs := make([]consolidation.FAQRef, len(ordered))
	for i, faq := range ordered {
		refs[i] = consolidation.FAQRef{ID: faq.ID, Text: faq.QuestionText, SimilarityCount: faq.SimilarityCount}
	}
	return refs, nil
}

// Find implements consolidation.FAQRepository.
func (r *MemoryRepository) Find(_ context.Context, id uuid.UUID) (consolidation.FAQ, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	faq, ok := r.faqs[id]
	return faq, ok, nil
}

// Insert implements consolidation.FAQRepository.
func (r *MemoryRepository) Insert(_ context.Context, faq consolidation.FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faqs[faq.ID] = faq
	return nil
}

// IncrementCount implements consolidation.FAQRepository.
func (r *MemoryRepository) IncrementCount(_ context.Context, faqID uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if faq, ok := r.faqs[faqID]; ok {
		faq.SimilarityCount += delta
		faq.UpdatedAt = time.Now().UTC()
		r.faqs[faqID] = faq
	}
	return nil
}

// SetVisibility implements consolidation.FAQRepository.
func (r *MemoryRepository) SetVisibility(_ context.Context, faqID uuid.UUID, visible bool) (consolidation.FAQ, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	faq, ok := r.faqs[faqID]
	if !ok {
		return consolidation.FAQ{}, false, nil
	}
	faq.Visible = visible
	faq.UpdatedAt = time.Now().UTC()
	r.faqs[faqID] = faq
	return faq, true, nil
}

// ListVisible implements consolidation.FAQRepository.
func (r *MemoryRepository) ListVisible(_ context.Context, siteID uuid.UUID) ([]consolidation.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	visible := make([]consolidation.FAQ, 0)
	for _, faq := range r.siteFAQsLocked(siteID) {
		if faq.Visible {
			visible = append(visible, faq)
		}
	}
	return visible, nil
}

// siteFAQsLocked orders by similarity count descending, then creation time,
// mirroring the Postgres query.
func (r *MemoryRepository) siteFAQsLocked(siteID uuid.UUID) []consolidation.FAQ {
	ordered := make([]consolidation.FAQ, 0)
	for _, faq := range r.faqs {
		if faq.SiteID == siteID {
			ordered = append(ordered, faq)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].SimilarityCount != ordered[j].SimilarityCount {
			return ordered[i].SimilarityCount > ordered[j].SimilarityCount
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}

var (
	_ consolidation.QuestionRepository = (*MemoryRepository)(nil)
	_ consolidation.FAQRepository      = (*MemoryRepository)(nil)
)

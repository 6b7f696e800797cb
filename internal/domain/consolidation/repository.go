package consolidation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QuestionRepository persists questions and answers. Every call is expected
// to be atomic at the storage layer.
type QuestionRepository interface {
	Create(ctx context.Context, question Question) error
	Get(ctx context.Context, id uuid.UUID) (Question, bool, error)
	// CreateAnswer stores the answer and flips the question's answered flag.
	CreateAnswer(ctx context.Context, answer Answer) error
	GetAnswer(ctx context.Context, questionID uuid.UUID) (Answer, bool, error)
	// ListOtherAnswered returns every answered question on the site except
	// the excluded one, in creation order.
	ListOtherAnswered(ctx context.Context, siteID, exclude uuid.UUID) ([]QuestionRef, error)
	// AttachToFAQ records the question's FAQ reference. A question already
	// attached elsewhere is never reassigned.
	AttachToFAQ(ctx context.Context, questionID, faqID uuid.UUID) error
}

// FAQRepository persists consolidated FAQs.
type FAQRepository interface {
	// ListForSite returns the site's FAQs ordered by similarity count
	// descending, then creation time.
	ListForSite(ctx context.Context, siteID uuid.UUID) ([]FAQRef, error)
	Find(ctx context.Context, id uuid.UUID) (FAQ, bool, error)
	Insert(ctx context.Context, faq FAQ) error
	IncrementCount(ctx context.Context, faqID uuid.UUID, delta int) error
	SetVisibility(ctx context.Context, faqID uuid.UUID, visible bool) (FAQ, bool, error)
	ListVisible(ctx context.Context, siteID uuid.UUID) ([]FAQ, error)
}

// PublicCache caches the visible-FAQ listing served to site widgets. It is
// best effort; every implementation must tolerate concurrent invalidation.
type PublicCache interface {
	Get(ctx context.Context, siteID uuid.UUID) ([]FAQ, bool, error)
	Set(ctx context.Context, siteID uuid.UUID, faqs []FAQ, ttl time.Duration) error
	Invalidate(ctx context.Context, siteID uuid.UUID) error
}

package consolidation

import (
	"time"

	"github.com/google/uuid"
)

// Question is a visitor-submitted question owned by a site. Its text is
// immutable after creation; only the answered flag and the FAQ reference ever
// change.
type Question struct {
	ID             uuid.UUID  `json:"id"`
	SiteID         uuid.UUID  `json:"siteId"`
	SubmitterEmail string     `json:"submitterEmail"`
	Text           string     `json:"text"`
	Answered       bool       `json:"answered"`
	FAQID          *uuid.UUID `json:"faqId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Answer is the 1:1 operator response to a Question, immutable once created.
// EmailSent records whether the submitter notification went out; delivery
// itself happens outside this core.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	Text       string    `json:"text"`
	EmailSent  bool      `json:"emailSent"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FAQ is a consolidated question/answer pair. SimilarityCount is the number
// of semantically-equivalent questions subsumed, including the FAQ's own
// originating question; it only ever increases.
type FAQ struct {
	ID              uuid.UUID `json:"id"`
	SiteID          uuid.UUID `json:"siteId"`
	QuestionText    string    `json:"questionText"`
	AnswerText      string    `json:"answerText"`
	SimilarityCount int       `json:"similarityCount"`
	Visible         bool      `json:"visible"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// QuestionRef is the slim projection the engine compares against.
type QuestionRef struct {
	ID   uuid.UUID
	Text string
}

// FAQRef is the slim FAQ projection loaded for matching.
type FAQRef struct {
	ID              uuid.UUID
	Text            string
	SimilarityCount int
}

// Outcome names the terminal state a consolidation run reached.
type Outcome string

const (
	// OutcomeMatchedExisting means the question reinforced an existing FAQ.
	OutcomeMatchedExisting Outcome = "matched_existing"
	// OutcomeCreatedNew means the question was promoted to a new FAQ.
	OutcomeCreatedNew Outcome = "created_new"
	// OutcomeNone means no FAQ was affected.
	OutcomeNone Outcome = "none"
)

// Result is returned by the engine for every processed question.
type Result struct {
	Outcome Outcome `json:"outcome"`
	FAQ     *FAQ    `json:"faq,omitempty"`
}

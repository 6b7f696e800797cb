package faqrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sanat-Jha/Truely-FAQ/internal/domain/consolidation"
)

// PostgresRepository implements the consolidation repositories using pgx.
//
// Expected schema:
//
//	questions(id uuid pk, site_id uuid, submitter_email text, question_text text,
//	          answered boolean, faq_id uuid null references faqs(id),
//	          created_at timestamptz, updated_at timestamptz)
//	answers(id uuid pk, question_id uuid unique references questions(id),
//	        answer_text text, email_sent boolean, created_at timestamptz)
//	faqs(id uuid pk, site_id uuid, question_text text, answer_text text,
//	     similarity_count integer, visible boolean,
//	     created_at timestamptz, updated_at timestamptz)
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create implements consolidation.QuestionRepository.
func (r *PostgresRepository) Create(ctx context.Context, question consolidation.Question) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO questions (id, site_id, submitter_email, question_text, answered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)
	`, question.ID, question.SiteID, question.SubmitterEmail, question.Text, question.CreatedAt, question.UpdatedAt)
	return err
}

// Get implements consolidation.QuestionRepository.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (consolidation.Question, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, site_id, submitter_email, question_text, answered, faq_id, created_at, updated_at
		FROM questions
		WHERE id = $1
	`, id)
	var question consolidation.Question
	err := row.Scan(&question.ID, &question.SiteID, &question.SubmitterEmail, &question.Text,
		&question.Answered, &question.FAQID, &question.CreatedAt, &question.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return consolidation.Question{}, false, nil
	}
	if err != nil {
		return consolidation.Question{}, false, err
	}
	return question, true, nil
}

// CreateAnswer stores the answer and flips the question's answered flag in a
// single transaction.
func (r *PostgresRepository) CreateAnswer(ctx context.Context, answer consolidation.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO answers (id, question_id, answer_text, email_sent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, answer.ID, answer.QuestionID, answer.Text, answer.EmailSent, answer.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE questions SET answered = true, updated_at = $2 WHERE id = $1
	`, answer.QuestionID, answer.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetAnswer implements consolidation.QuestionRepository.
func (r *PostgresRepository) GetAnswer(ctx context.Context, questionID uuid.UUID) (consolidation.Answer, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, question_id, answer_text, email_sent, created_at
		FROM answers
		WHERE question_id = $1
	`, questionID)
	var answer consolidation.Answer
	err := row.Scan(&answer.ID, &answer.QuestionID, &answer.Text, &answer.EmailSent, &answer.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return consolidation.Answer{}, false, nil
	}
	if err != nil {
		return consolidation.Answer{}, false, err
	}
	return answer, true, nil
}

// ListOtherAnswered implements consolidation.QuestionRepository.
func (r *PostgresRepository) ListOtherAnswered(ctx context.Context, siteID, exclude uuid.UUID) ([]consolidation.QuestionRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question_text
		FROM questions
		WHERE site_id = $1 AND id <> $2 AND answered
		ORDER BY created_at
	`, siteID, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]consolidation.QuestionRef, 0)
	for rows.Next() {
		var ref consolidation.QuestionRef
		if err := rows.Scan(&ref.ID, &ref.Text); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// AttachToFAQ implements consolidation.QuestionRepository. The faq_id IS NULL
// guard keeps an attached question from ever being reassigned.
func (r *PostgresRepository) AttachToFAQ(ctx context.Context, questionID, faqID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE questions SET faq_id = $2, updated_at = now()
		WHERE id = $1 AND faq_id IS NULL
	`, questionID, faqID)
	return err
}

// ListForSite implements consolidation.FAQRepository.
func (r *PostgresRepository) ListForSite(ctx context.Context, siteID uuid.UUID) ([]consolidation.FAQRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question_text, similarity_count
		FROM faqs
		WHERE site_id = $1
		ORDER BY similarity_count DESC, created_at
	`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]consolidation.FAQRef, 0)
	for rows.Next() {
		var ref consolidation.FAQRef
		if err := rows.Scan(&ref.ID, &ref.Text, &ref.SimilarityCount); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Find implements consolidation.FAQRepository.
func (r *PostgresRepository) Find(ctx context.Context, id uuid.UUID) (consolidation.FAQ, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, site_id, question_text, answer_text, similarity_count, visible, created_at, updated_at
		FROM faqs
		WHERE id = $1
	`, id)
	faq, err := scanFAQ(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return consolidation.FAQ{}, false, nil
	}
	if err != nil {
		return consolidation.FAQ{}, false, err
	}
	return faq, true, nil
}

// Insert implements consolidation.FAQRepository.
func (r *PostgresRepository) Insert(ctx context.Context, faq consolidation.FAQ) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO faqs (id, site_id, question_text, answer_text, similarity_count, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, faq.ID, faq.SiteID, faq.QuestionText, faq.AnswerText, faq.SimilarityCount, faq.Visible, faq.CreatedAt, faq.UpdatedAt)
	return err
}

// IncrementCount implements consolidation.FAQRepository.
func (r *PostgresRepository) IncrementCount(ctx context.Context, faqID uuid.UUID, delta int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE faqs SET similarity_count = similarity_count + $2, updated_at = now()
		WHERE id = $1
	`, faqID, delta)
	return err
}

// SetVisibility implements consolidation.FAQRepository.
func (r *PostgresRepository) SetVisibility(ctx context.Context, faqID uuid.UUID, visible bool) (consolidation.FAQ, bool, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE faqs SET visible = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, site_id, question_text, answer_text, similarity_count, visible, created_at, updated_at
	`, faqID, visible)
	faq, err := scanFAQ(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return consolidation.FAQ{}, false, nil
	}
	if err != nil {
		return consolidation.FAQ{}, false, err
	}
	return faq, true, nil
}

// ListVisible implements consolidation.FAQRepository.
func (r *PostgresRepository) ListVisible(ctx context.Context, siteID uuid.UUID) ([]consolidation.FAQ, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, site_id, question_text, answer_text, similarity_count, visible, created_at, updated_at
		FROM faqs
		WHERE site_id = $1 AND visible
		ORDER BY similarity_count DESC, created_at
	`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := make([]consolidation.FAQ, 0)
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, faq)
	}
	return faqs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFAQ(row rowScanner) (consolidation.FAQ, error) {
	var faq consolidation.FAQ
	err := row.Scan(&faq.ID, &faq.SiteID, &faq.QuestionText, &faq.AnswerText,
		&faq.SimilarityCount, &faq.Visible, &faq.CreatedAt, &faq.UpdatedAt)
	return faq, err
}

var (
	_ consolidation.QuestionRepository = (*PostgresRepository)(nil)
	_ consolidation.FAQRepository      = (*PostgresRepository)(nil)
)

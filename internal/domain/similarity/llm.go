package similarity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sanat-Jha/Truely-FAQ/internal/infra/llm/chatgpt"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// LLMMatcher asks a chat model whether the query duplicates a candidate. The
// threshold parameter is ignored; the model itself is the judge.
type LLMMatcher struct {
	client      chatClient
	model       string
	temperature float32
}

// NewLLMMatcher constructs a matcher backed by a chat completion client.
func NewLLMMatcher(client chatClient, model string, temperature float32) *LLMMatcher {
	return &LLMMatcher{client: client, model: model, temperature: temperature}
}

// BestMatch lists the candidates and asks for "Yes,<number>" or "No".
func (m *LLMMatcher) BestMatch(ctx context.Context, query string, candidates []string, _ float64) (int, error) {
	var listing strings.Builder
	for i, candidate := range candidates {
		fmt.Fprintf(&listing, "Question %d: %s\n", i+1, candidate)
	}
	prompt := fmt.Sprintf(
		"Does this question duplicate any of these existing questions?\nQuestion: %q\n\nExisting questions:\n%s\nRespond in format: Yes,<question number> or No.\nExample: 'Yes,2' if it duplicates question 2, or 'No' if it duplicates none.",
		query, listing.String(),
	)

	answer, err := m.ask(ctx, prompt)
	if err != nil {
		return -1, err
	}
	if !strings.HasPrefix(strings.ToLower(answer), "yes") {
		return -1, nil
	}
	parts := strings.SplitN(answer, ",", 2)
	if len(parts) != 2 {
		return -1, fmt.Errorf("unparseable match response %q", answer)
	}
	number, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return -1, fmt.Errorf("unparseable match index in %q: %w", answer, err)
	}
	if number < 1 || number > len(candidates) {
		return -1, fmt.Errorf("match index %d out of range", number)
	}
	return number - 1, nil
}

// FrequencyCount asks for "Yes/<count>" or "No/0".
func (m *LLMMatcher) FrequencyCount(ctx context.Context, query string, candidates []string, _ float64) (int, error) {
	var listing strings.Builder
	for _, candidate := range candidates {
		fmt.Fprintf(&listing, "- %s\n", candidate)
	}
	prompt := fmt.Sprintf(
		"Is this question %q similar to any of these questions? If yes, how many?\n\nExisting questions:\n%s\nRespond in format: Yes/<count> or No/0.\nExample: 'Yes/3' if similar to 3 questions, or 'No/0' if similar to none.",
		query, listing.String(),
	)

	answer, err := m.ask(ctx, prompt)
	if err != nil {
		return 0, err
	}
	parts := strings.SplitN(answer, "/", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("unparseable count response %q", answer)
	}
	if !strings.EqualFold(strings.TrimSpace(parts[0]), "yes") {
		return 0, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("unparseable count in %q: %w", answer, err)
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}

func (m *LLMMatcher) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       m.model,
		Messages:    []chatgpt.Message{{Role: "user", Content: prompt}},
		Temperature: m.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat model returned no choices")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("chat model returned empty content")
	}
	return answer, nil
}

var _ Matcher = (*LLMMatcher)(nil)

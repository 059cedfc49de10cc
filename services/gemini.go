package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/vnkhanh/flashcard-backend/config"
)

// ModelBackend is the capability the orchestrator needs from a text
// generation service. It is the only seam in the pipeline that does network
// I/O, and the one tests mock.
//
// Implementations enforce their own per-call timeout and never retry; retry
// policy belongs to the orchestrator.
type ModelBackend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiBackend calls the Gemini API. One client is shared across all calls.
type GeminiBackend struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiBackend(ctx context.Context, cfg config.Pipeline) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}
	return &GeminiBackend{
		client:  client,
		model:   cfg.GeminiModel,
		timeout: cfg.BackendTimeout,
	}, nil
}

func (g *GeminiBackend) Close() error {
	return g.client.Close()
}

func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyBackendError(err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked (%v)", ErrBackendRejected, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", ErrBackendRejected)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

// classifyBackendError maps transport and API failures onto the pipeline's
// error taxonomy so the orchestrator can decide what to retry.
func classifyBackendError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrBackendTimeout, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrBackendRejected, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

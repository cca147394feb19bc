// Package llm turns (document text, question) pairs into cleaned
// natural-language answers via an OpenAI-compatible completion endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docassist/internal/config"
)

const (
	// maxDocumentChars bounds how much document text goes into the prompt.
	// Longer documents are clipped, not summarized.
	maxDocumentChars = 8000
	maxAnswerTokens  = 2000
	requestTimeout   = 60 * time.Second
)

var (
	// ErrAPIKeyMissing means no completion credential is configured; no
	// network call is attempted.
	ErrAPIKeyMissing = errors.New("completion API key not configured")

	// ErrUpstream wraps non-success responses and network failures from the
	// remote endpoint.
	ErrUpstream = errors.New("completion endpoint error")
)

const promptTemplate = `You are a helpful document analysis assistant. Analyze the following document and answer the user's question.

<document>
%s
</document>

User Question: %s

Instructions:
- Provide a clear, direct answer based ONLY on the document content
- Be concise but complete
- If the information is not in the document, politely say so
- Use proper formatting with paragraphs for readability
- Do not include any special characters, escape sequences, or formatting markers`

// Answerer is the consumer-facing contract for question answering.
type Answerer interface {
	Answer(ctx context.Context, documentText, question string, temperature float32) (string, error)
	AnswerWithContext(ctx context.Context, documentText, question, extraContext string, temperature float32) (string, error)
	Model() string
}

// Service answers questions about extracted document text through an
// OpenAI-compatible chat completion API (OpenRouter by default). It holds
// no per-request state and is safe for concurrent use.
type Service struct {
	client *openai.Client
	model  string
	apiKey string
}

var _ Answerer = (*Service)(nil)

// New builds a Service from configuration. The HTTP client carries a fixed
// request timeout; there is no retry.
func New(cfg config.OpenRouterConfig) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{
		Timeout: requestTimeout,
		Transport: &attributionTransport{
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}

	return &Service{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

// Model returns the configured model identifier.
func (s *Service) Model() string { return s.model }

// Answer resolves a question against documentText. Short greetings are
// answered locally; everything else issues exactly one completion request
// and returns the cleaned response text.
func (s *Service) Answer(ctx context.Context, documentText, question string, temperature float32) (string, error) {
	if IsGreeting(question) {
		return greetingResponse, nil
	}
	if s.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	prompt := fmt.Sprintf(promptTemplate, clip(documentText, maxDocumentChars), question)

	// The client omits a zero temperature from the request body; nudge it to
	// the smallest representable value so an explicit 0 still reaches the API.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxAnswerTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	return CleanResponse(resp.Choices[0].Message.Content), nil
}

// AnswerWithContext prepends free-text context ahead of the document text
// and delegates to Answer, including the greeting short-circuit.
func (s *Service) AnswerWithContext(ctx context.Context, documentText, question, extraContext string, temperature float32) (string, error) {
	if IsGreeting(question) {
		return greetingResponse, nil
	}
	full := fmt.Sprintf("%s\n\nDocument Content:\n%s", extraContext, clip(documentText, maxDocumentChars))
	return s.Answer(ctx, full, question, temperature)
}

// clip truncates s to at most n characters (runes, not bytes).
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// attributionTransport adds the OpenRouter attribution headers to every
// outbound request.
type attributionTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())
	if t.referer != "" {
		out.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		out.Header.Set("X-Title", t.title)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(out)
}

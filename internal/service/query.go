package service

import (
	"context"
	"errors"
	"strings"

	"docassist/internal/llm"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrNoContent        = errors.New("document has no extractable content")
)

// QueryResult is the answer to one question about one document. It is
// ephemeral and never persisted.
type QueryResult struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Model      string `json:"model"`
}

// QueryService answers natural-language questions about stored documents.
type QueryService interface {
	Query(ctx context.Context, id, question string, temperature float32) (*QueryResult, error)
}

type queryService struct {
	docs     DocumentService
	answerer llm.Answerer
}

// NewQueryService constructs a QueryService over the document store and an
// answer backend.
func NewQueryService(docs DocumentService, answerer llm.Answerer) QueryService {
	return &queryService{docs: docs, answerer: answerer}
}

// Query loads a document's extracted content, flattens archives into one
// text blob, and asks the answer backend. Not-found and empty-content cases
// surface as sentinel errors for the handler to translate.
func (s *queryService) Query(ctx context.Context, id, question string, temperature float32) (*QueryResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(question) == "" {
		return nil, ErrQuestionRequired
	}

	content, err := s.docs.Content(ctx, id)
	if err != nil {
		return nil, err
	}
	text := content.Flatten()
	if text == "" {
		return nil, ErrNoContent
	}

	answer, err := s.answerer.Answer(ctx, text, question, temperature)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		DocumentID: id,
		Question:   question,
		Answer:     answer,
		Model:      s.answerer.Model(),
	}, nil
}

package service_test

import (
	"context"
	"errors"
	"testing"

	llmMocks "docassist/internal/llm/mocks"
	"docassist/internal/model"
	"docassist/internal/service"
	svcMocks "docassist/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryService_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("answers from single document text", func(t *testing.T) {
		mDocs := new(svcMocks.MockDocumentService)
		mAnswer := new(llmMocks.MockAnswerer)
		svc := service.NewQueryService(mDocs, mAnswer)

		mDocs.On("Content", ctx, "doc-1").
			Return(&model.ExtractedContent{Format: model.FormatTXT, Text: "Q3 revenue was $5M."}, nil)
		mAnswer.On("Answer", ctx, "Q3 revenue was $5M.", "What is the total revenue?", float32(0.7)).
			Return("Revenue was $5M.", nil)
		mAnswer.On("Model").Return("openrouter/auto")

		res, err := svc.Query(ctx, "doc-1", "What is the total revenue?", 0.7)

		require.NoError(t, err)
		assert.Equal(t, "doc-1", res.DocumentID)
		assert.Equal(t, "Revenue was $5M.", res.Answer)
		assert.Equal(t, "openrouter/auto", res.Model)
	})

	t.Run("flattens archive content", func(t *testing.T) {
		mDocs := new(svcMocks.MockDocumentService)
		mAnswer := new(llmMocks.MockAnswerer)
		svc := service.NewQueryService(mDocs, mAnswer)

		mDocs.On("Content", ctx, "doc-1").Return(&model.ExtractedContent{
			Format: model.FormatZIP,
			Entries: []model.ArchiveEntry{
				{Path: "a.txt", Text: "alpha"},
				{Path: "b.txt", Text: "beta"},
			},
		}, nil)
		mAnswer.On("Answer", ctx, "--- a.txt ---\nalpha\n\n--- b.txt ---\nbeta", "what files are here", float32(0.7)).
			Return("two text files", nil)
		mAnswer.On("Model").Return("openrouter/auto")

		res, err := svc.Query(ctx, "doc-1", "what files are here", 0.7)

		require.NoError(t, err)
		assert.Equal(t, "two text files", res.Answer)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := service.NewQueryService(new(svcMocks.MockDocumentService), new(llmMocks.MockAnswerer))
		_, err := svc.Query(ctx, "", "question", 0.7)
		assert.ErrorIs(t, err, service.ErrIDRequired)
	})

	t.Run("blank question", func(t *testing.T) {
		svc := service.NewQueryService(new(svcMocks.MockDocumentService), new(llmMocks.MockAnswerer))
		_, err := svc.Query(ctx, "doc-1", "   ", 0.7)
		assert.ErrorIs(t, err, service.ErrQuestionRequired)
	})

	t.Run("document not found", func(t *testing.T) {
		mDocs := new(svcMocks.MockDocumentService)
		svc := service.NewQueryService(mDocs, new(llmMocks.MockAnswerer))

		mDocs.On("Content", ctx, "missing").Return(nil, service.ErrNotFound)

		_, err := svc.Query(ctx, "missing", "question", 0.7)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("empty content", func(t *testing.T) {
		mDocs := new(svcMocks.MockDocumentService)
		svc := service.NewQueryService(mDocs, new(llmMocks.MockAnswerer))

		mDocs.On("Content", ctx, "doc-1").
			Return(&model.ExtractedContent{Format: model.FormatTXT, Text: ""}, nil)

		_, err := svc.Query(ctx, "doc-1", "question", 0.7)
		assert.ErrorIs(t, err, service.ErrNoContent)
	})

	t.Run("answer backend failure", func(t *testing.T) {
		mDocs := new(svcMocks.MockDocumentService)
		mAnswer := new(llmMocks.MockAnswerer)
		svc := service.NewQueryService(mDocs, mAnswer)

		mDocs.On("Content", ctx, "doc-1").
			Return(&model.ExtractedContent{Format: model.FormatTXT, Text: "text"}, nil)
		mAnswer.On("Answer", ctx, "text", "question", float32(0.7)).
			Return("", errors.New("upstream blew up"))

		_, err := svc.Query(ctx, "doc-1", "question", 0.7)
		assert.Error(t, err)
	})
}

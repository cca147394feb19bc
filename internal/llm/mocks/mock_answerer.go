package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, documentText, question string, temperature float32) (string, error) {
	args := m.Called(ctx, documentText, question, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockAnswerer) AnswerWithContext(ctx context.Context, documentText, question, extraContext string, temperature float32) (string, error) {
	args := m.Called(ctx, documentText, question, extraContext, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockAnswerer) Model() string {
	args := m.Called()
	return args.String(0)
}

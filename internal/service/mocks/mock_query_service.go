package mocks

import (
	"context"

	"docassist/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) Query(ctx context.Context, id, question string, temperature float32) (*service.QueryResult, error) {
	args := m.Called(ctx, id, question, temperature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QueryResult), args.Error(1)
}

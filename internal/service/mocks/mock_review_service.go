package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/service"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Submit(ctx context.Context, principal model.Principal, in service.ReviewInput) (*model.Review, error) {
	args := m.Called(ctx, principal, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, principal model.Principal, id string, in service.ReviewUpdate) (*model.Review, error) {
	args := m.Called(ctx, principal, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, principal model.Principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

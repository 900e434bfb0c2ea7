package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Prograto/BookReviewsPlatform/internal/model"
	"github.com/Prograto/BookReviewsPlatform/internal/service"
)

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Create(ctx context.Context, principal model.Principal, in service.BookInput) (*model.Book, error) {
	args := m.Called(ctx, principal, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) List(ctx context.Context, page, limit int) (*service.BookListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookListResult), args.Error(1)
}

func (m *MockBookService) Get(ctx context.Context, id string) (*model.BookDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookDetails), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, principal model.Principal, id string, in service.BookUpdate) (*model.Book, error) {
	args := m.Called(ctx, principal, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) Delete(ctx context.Context, principal model.Principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

package handler

import (
	"context"

	"ecomcart-be/internal/cart"
	"ecomcart-be/internal/order"
	"ecomcart-be/internal/product"
	"ecomcart-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.CreateInput) (*product.CreateResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.CreateResult), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) result(args mock.Arguments) (*cart.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockCartService) AddItem(ctx context.Context, userID string, input cart.AddItemInput) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, input))
}

func (m *MockCartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, itemID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, itemID string) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID, itemID))
}

func (m *MockCartService) Clear(ctx context.Context, userID string) (*cart.Cart, error) {
	return m.result(m.Called(ctx, userID))
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, c order.Customer) (*order.Receipt, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Receipt), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, callerID, id string) (*order.Order, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (*user.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, input user.LoginInput) (*user.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Profile(ctx context.Context, userID string) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, input user.UpdateProfileInput) (*user.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) Resolve(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

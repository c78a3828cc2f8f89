package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/ordering"
	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/domain/shared"
)

// MockGateway is a mock implementation of the licensing gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CheckCredentials(ctx context.Context, userRef string) (*licensing.Credential, error) {
	args := m.Called(ctx, userRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensing.Credential), args.Error(1)
}

func (m *MockGateway) CreateUserCredentials(ctx context.Context, user licensing.NewUser) (*licensing.Credential, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensing.Credential), args.Error(1)
}

func (m *MockGateway) CheckContentLicense(ctx context.Context, accessToken, sku string) (*licensing.License, error) {
	args := m.Called(ctx, accessToken, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensing.License), args.Error(1)
}

func (m *MockGateway) CreateCode(ctx context.Context, accessToken, sku string) (*licensing.Code, error) {
	args := m.Called(ctx, accessToken, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensing.Code), args.Error(1)
}

func (m *MockGateway) RedeemCode(ctx context.Context, accessToken, code string) (*licensing.Redemption, error) {
	args := m.Called(ctx, accessToken, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*licensing.Redemption), args.Error(1)
}

func (m *MockGateway) ResolveReadLink(ctx context.Context, accessToken, vendorBookID string) (string, error) {
	args := m.Called(ctx, accessToken, vendorBookID)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) FetchCatalog(ctx context.Context) ([]licensing.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]licensing.CatalogItem), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaidForCustomerWithProduct(ctx context.Context, customerID, productID uuid.UUID, since time.Time) ([]ordering.Order, error) {
	args := m.Called(ctx, customerID, productID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockOptionRepository is a mock implementation of OptionRepository
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockOptionRepository) Set(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockOptionRepository) Load(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Settings), args.Error(1)
}

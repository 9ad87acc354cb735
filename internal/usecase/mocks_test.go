package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/restroiq/crm-api/internal/entity"
	"github.com/restroiq/crm-api/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFollowUpRepository struct {
	mock.Mock
}

func (m *MockFollowUpRepository) Create(ctx context.Context, fu *entity.FollowUp) error {
	args := m.Called(ctx, fu)
	return args.Error(0)
}

func (m *MockFollowUpRepository) FindByLeadID(ctx context.Context, leadID string) ([]entity.FollowUp, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FollowUp), args.Error(1)
}

// MockAtomicFollowUpStore also satisfies usecase.AtomicFollowUpStore.
type MockAtomicFollowUpStore struct {
	MockFollowUpRepository
}

func (m *MockAtomicFollowUpStore) LogFollowUp(ctx context.Context, fu *entity.FollowUp, lead *entity.Lead) error {
	args := m.Called(ctx, fu, lead)
	return args.Error(0)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockAlertMailer struct {
	mock.Mock
}

func (m *MockAlertMailer) SendConversionAlert(to, restaurantName, contactPerson, city, phone string) error {
	args := m.Called(to, restaurantName, contactPerson, city, phone)
	return args.Error(0)
}

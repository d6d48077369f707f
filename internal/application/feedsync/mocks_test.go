package feedsync

import (
	"context"
	"time"

	"github.com/estatecms/backend/internal/domain/catalog"
	"github.com/estatecms/backend/internal/domain/feed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockProviderRepo struct {
	mock.Mock
}

func (m *mockProviderRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Provider), args.Error(1)
}

func (m *mockProviderRepo) FindByAnbieternr(ctx context.Context, anbieternr string) (*catalog.Provider, error) {
	args := m.Called(ctx, anbieternr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Provider), args.Error(1)
}

type mockContactPersonRepo struct {
	mock.Mock
}

func (m *mockContactPersonRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ContactPerson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ContactPerson), args.Error(1)
}

func (m *mockContactPersonRepo) FindOneByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*catalog.ContactPerson, error) {
	args := m.Called(ctx, providerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ContactPerson), args.Error(1)
}

func (m *mockContactPersonRepo) CountByFields(ctx context.Context, providerID uuid.UUID, fields map[string]string) (int64, error) {
	args := m.Called(ctx, providerID, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContactPersonRepo) Save(ctx context.Context, person *catalog.ContactPerson) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

type mockRealEstateRepo struct {
	mock.Mock
}

func (m *mockRealEstateRepo) FindOneByField(ctx context.Context, field, value string) (*catalog.RealEstate, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.RealEstate), args.Error(1)
}

func (m *mockRealEstateRepo) CountByField(ctx context.Context, field, value string) (int64, error) {
	args := m.Called(ctx, field, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRealEstateRepo) Save(ctx context.Context, estate *catalog.RealEstate) error {
	args := m.Called(ctx, estate)
	return args.Error(0)
}

func (m *mockRealEstateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAssetRepo struct {
	mock.Mock
}

func (m *mockAssetRepo) FindByPath(ctx context.Context, path string) (*catalog.Asset, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Asset), args.Error(1)
}

func (m *mockAssetRepo) Save(ctx context.Context, asset *catalog.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *mockAssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAssetRepo) DeleteByPathPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Append(ctx context.Context, entry *feed.SyncHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockHistoryRepo) FindBySources(ctx context.Context, interfaceID uuid.UUID, sources []string) (map[string]*feed.SyncHistoryEntry, error) {
	args := m.Called(ctx, interfaceID, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*feed.SyncHistoryEntry), args.Error(1)
}

func (m *mockHistoryRepo) FindByInterface(ctx context.Context, interfaceID uuid.UUID, limit int) ([]*feed.SyncHistoryEntry, error) {
	args := m.Called(ctx, interfaceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*feed.SyncHistoryEntry), args.Error(1)
}

type mockInterfaceRepo struct {
	mock.Mock
}

func (m *mockInterfaceRepo) FindByID(ctx context.Context, id uuid.UUID) (*feed.Interface, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feed.Interface), args.Error(1)
}

func (m *mockInterfaceRepo) MappingsByInterface(ctx context.Context, id uuid.UUID) ([]feed.MappingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feed.MappingRule), args.Error(1)
}

func (m *mockInterfaceRepo) StampLastSync(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

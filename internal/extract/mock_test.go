package extract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/savedlist-cli/internal/model"
	"github.com/sells-group/savedlist-cli/internal/store"
)

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveExtraction(ctx context.Context, e model.Extraction) (*model.Extraction, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Extraction), args.Error(1)
}

func (m *mockStore) GetExtraction(ctx context.Context, id string) (*model.Extraction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Extraction), args.Error(1)
}

func (m *mockStore) ListExtractions(ctx context.Context, filter store.ListFilter) ([]model.Extraction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Extraction), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

// --- Source Mock ---

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockSource) Name() string {
	return "mock:list"
}

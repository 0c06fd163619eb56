package usecase

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) All(ctx context.Context) ([]*entity.Setting, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]*entity.Setting)
	return rows, args.Error(1)
}

func (m *mockSettingsRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	args := m.Called(ctx, key)
	s, _ := args.Get(0).(*entity.Setting)
	return s, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSettingsRepo) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type mockBusinessInfoRepo struct{ mock.Mock }

func (m *mockBusinessInfoRepo) Get(ctx context.Context) (*entity.BusinessInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(*entity.BusinessInfo)
	return info, args.Error(1)
}

func (m *mockBusinessInfoRepo) Save(ctx context.Context, info *entity.BusinessInfo) error {
	return m.Called(ctx, info).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockFileRepo struct{ mock.Mock }

func (m *mockFileRepo) Create(ctx context.Context, f *entity.StoredFile) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id int64) (*entity.StoredFile, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*entity.StoredFile)
	return f, args.Error(1)
}

func (m *mockFileRepo) List(ctx context.Context, category string) ([]*entity.StoredFile, error) {
	args := m.Called(ctx, category)
	list, _ := args.Get(0).([]*entity.StoredFile)
	return list, args.Error(1)
}

func (m *mockFileRepo) Update(ctx context.Context, f *entity.StoredFile) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFileRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockFileStore struct{ mock.Mock }

func (m *mockFileStore) Save(ctx context.Context, name string, size int64, r io.Reader) (*SavedUpload, error) {
	args := m.Called(ctx, name, size, r)
	s, _ := args.Get(0).(*SavedUpload)
	return s, args.Error(1)
}

func (m *mockFileStore) Remove(name string) error {
	return m.Called(name).Error(0)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) InventoryUsage(ctx context.Context, start, end time.Time) ([]repository.UsageRow, error) {
	args := m.Called(ctx, start, end)
	rows, _ := args.Get(0).([]repository.UsageRow)
	return rows, args.Error(1)
}

func (m *mockReportRepo) WasteSummary(ctx context.Context, start, end time.Time) ([]repository.WasteRow, error) {
	args := m.Called(ctx, start, end)
	rows, _ := args.Get(0).([]repository.WasteRow)
	return rows, args.Error(1)
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Format() string      { return "pdf" }
func (m *mockRenderer) ContentType() string { return "application/pdf" }

func (m *mockRenderer) RenderUsage(ctx context.Context, h ReportHeader, r *dto.InventoryUsageReport) ([]byte, error) {
	args := m.Called(ctx, h, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockRenderer) RenderWaste(ctx context.Context, h ReportHeader, r *dto.WasteReport) ([]byte, error) {
	args := m.Called(ctx, h, r)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockBackupStore struct{ mock.Mock }

func (m *mockBackupStore) Snapshot(ctx context.Context, dest string) error {
	return m.Called(ctx, dest).Error(0)
}

func (m *mockBackupStore) RestoreFrom(ctx context.Context, src string, log *logger.Logger) (map[string]int64, error) {
	args := m.Called(ctx, src, log)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

package bulkjobmodel

import "context"

// IBulkJobRepository defines the interface for bulk job history operations
type IBulkJobRepository interface {
	Start(ctx context.Context, templateId string, userId string) (string, error)
	Complete(ctx context.Context, jobId string, total int, zipPath string) error
	Fail(ctx context.Context, jobId string, total int, generated int, reason string) error
	GetByUser(ctx context.Context, userId string, limit int64) ([]*BulkJob, error)
}

var _ IBulkJobRepository = (*BulkJobRepository)(nil)

// MockBulkJobRepository is a mock implementation for testing
type MockBulkJobRepository struct {
	StartFunc     func(ctx context.Context, templateId string, userId string) (string, error)
	CompleteFunc  func(ctx context.Context, jobId string, total int, zipPath string) error
	FailFunc      func(ctx context.Context, jobId string, total int, generated int, reason string) error
	GetByUserFunc func(ctx context.Context, userId string, limit int64) ([]*BulkJob, error)
}

var _ IBulkJobRepository = (*MockBulkJobRepository)(nil)

func NewMockBulkJobRepository() *MockBulkJobRepository {
	return &MockBulkJobRepository{}
}

func (m *MockBulkJobRepository) Start(ctx context.Context, templateId string, userId string) (string, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, templateId, userId)
	}
	return "", nil
}

func (m *MockBulkJobRepository) Complete(ctx context.Context, jobId string, total int, zipPath string) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, jobId, total, zipPath)
	}
	return nil
}

func (m *MockBulkJobRepository) Fail(ctx context.Context, jobId string, total int, generated int, reason string) error {
	if m.FailFunc != nil {
		return m.FailFunc(ctx, jobId, total, generated, reason)
	}
	return nil
}

func (m *MockBulkJobRepository) GetByUser(ctx context.Context, userId string, limit int64) ([]*BulkJob, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(ctx, userId, limit)
	}
	return nil, nil
}

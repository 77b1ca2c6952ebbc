package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/cache"
	"github.com/Criterio-inc/mognadsmataren/internal/insights"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByShareCode(ctx context.Context, shareCode string) (*models.Project, error) {
	args := m.Called(ctx, shareCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) Search(ctx context.Context, query string, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	args := m.Called(ctx, query, filters)
	return args.Get(0).([]*models.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) ExistsByShareCode(ctx context.Context, shareCode string) (bool, error) {
	args := m.Called(ctx, shareCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error {
	args := m.Called(ctx, id, bundle)
	return args.Error(0)
}

func (m *MockProjectRepository) ClearInsights(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) GetStats(ctx context.Context, id uint) (*repositories.ProjectStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ProjectStats), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.AssessmentSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id uint) (*models.AssessmentSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssessmentSession), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session *models.AssessmentSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByProject(ctx context.Context, projectID uint, filters repositories.SessionFilters) ([]*models.AssessmentSession, int64, error) {
	args := m.Called(ctx, projectID, filters)
	return args.Get(0).([]*models.AssessmentSession), args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepository) GetCompletedByProject(ctx context.Context, projectID uint) ([]*models.AssessmentSession, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]*models.AssessmentSession), args.Error(1)
}

func (m *MockSessionRepository) CountByProject(ctx context.Context, projectID uint, status *models.SessionStatus) (int64, error) {
	args := m.Called(ctx, projectID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) UpsertResponse(ctx context.Context, sessionID uint, questionID, value int) error {
	args := m.Called(ctx, sessionID, questionID, value)
	return args.Error(0)
}

func (m *MockSessionRepository) GetResponses(ctx context.Context, sessionID uint) ([]*models.Response, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockSessionRepository) SaveResult(ctx context.Context, id uint, scoreSet datatypes.JSON, overall float64, level int, completedAt time.Time) error {
	args := m.Called(ctx, id, scoreSet, overall, level, completedAt)
	return args.Error(0)
}

func (m *MockSessionRepository) SaveInsights(ctx context.Context, id uint, bundle datatypes.JSON) error {
	args := m.Called(ctx, id, bundle)
	return args.Error(0)
}

// mockRepository bundles the sub-repository mocks behind the aggregate
// interface. Transactions run the callback against the same mocks.
type mockRepository struct {
	projects *MockProjectRepository
	sessions *MockSessionRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects: new(MockProjectRepository),
		sessions: new(MockSessionRepository),
	}
}

func (m *mockRepository) Project() repositories.ProjectRepository { return m.projects }
func (m *mockRepository) Session() repositories.SessionRepository { return m.sessions }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }

func (m *mockRepository) AssertExpectations(t mock.TestingT) {
	m.projects.AssertExpectations(t)
	m.sessions.AssertExpectations(t)
}

// memoryCache is a map-backed CacheService for tests.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]byte)
	return nil
}

// stubGenerator returns a fixed bundle so service tests stay deterministic.
type stubGenerator struct {
	bundle insights.Bundle
	err    error
	calls  int
}

func (g *stubGenerator) Generate(ctx context.Context, scores assessment.ScoreSet, locale assessment.Locale) (insights.Bundle, error) {
	g.calls++
	if g.err != nil {
		return insights.Bundle{}, g.err
	}
	return g.bundle, nil
}

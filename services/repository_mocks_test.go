package services

import (
	"context"
	"io"
	"sync"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/live"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/Dosada05/botola-fantasy/storage"

	"github.com/stretchr/testify/mock"
)

// MockTransactor выполняет fn без реальной транзакции.
type MockTransactor struct {
	Calls int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	m.Calls++
	return fn(nil)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, exec repositories.SQLExecutor, user *models.User) error {
	args := m.Called(ctx, exec, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Player, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdatePoints(ctx context.Context, exec repositories.SQLExecutor, id string, points int) error {
	args := m.Called(ctx, exec, id, points)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateImageKey(ctx context.Context, id string, key *string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetByUserID(ctx context.Context, exec repositories.SQLExecutor, userID string) (*models.SquadLedger, error) {
	args := m.Called(ctx, exec, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SquadLedger), args.Error(1)
}

func (m *MockLedgerRepository) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, userID string) (*models.SquadLedger, error) {
	args := m.Called(ctx, exec, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SquadLedger), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, exec repositories.SQLExecutor, ledger *models.SquadLedger) error {
	args := m.Called(ctx, exec, ledger)
	return args.Error(0)
}

type MockLeagueRepository struct {
	mock.Mock
}

func (m *MockLeagueRepository) Create(ctx context.Context, league *models.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}

func (m *MockLeagueRepository) GetByID(ctx context.Context, id string) (*models.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueRepository) GetByCode(ctx context.Context, code string) (*models.League, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueRepository) ListByMember(ctx context.Context, userID string) ([]models.League, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.League), args.Error(1)
}

func (m *MockLeagueRepository) AddMember(ctx context.Context, leagueID string, userID string) (*models.League, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

type MockGameweekRepository struct {
	mock.Mock
}

func (m *MockGameweekRepository) Current(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockGameweekRepository) Set(ctx context.Context, gameweek int) error {
	args := m.Called(ctx, gameweek)
	return args.Error(0)
}

type MockFileUploader struct {
	mock.Mock
}

func (m *MockFileUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	args := m.Called(ctx, key, contentType, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockFileUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileUploader) GetPublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// stubCatalog отдаёт фиксированный каталог и реализует PlayerService.
type stubCatalog struct {
	PlayerService
	players []models.Player
}

func (s stubCatalog) Catalog(ctx context.Context) (fantasy.Catalog, error) {
	return fantasy.NewCatalog(s.players), nil
}

// recordingHub запоминает отправленные сообщения.
type recordingHub struct {
	mu       sync.Mutex
	messages map[string][]live.Message
}

func newRecordingHub() *recordingHub {
	return &recordingHub{messages: make(map[string][]live.Message)}
}

func (h *recordingHub) BroadcastToRoom(roomID string, message live.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[roomID] = append(h.messages[roomID], message)
}

func (h *recordingHub) Messages(roomID string) []live.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]live.Message(nil), h.messages[roomID]...)
}

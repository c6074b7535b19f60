package handlers

import (
	"context"
	"io"

	"github.com/Dosada05/botola-fantasy/fantasy"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/services"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSquadService struct {
	mock.Mock
}

func (m *MockSquadService) ledger(args mock.Arguments) (*models.SquadLedger, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SquadLedger), args.Error(1)
}

func (m *MockSquadService) GetSquad(ctx context.Context, userID string) (*models.SquadView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SquadView), args.Error(1)
}

func (m *MockSquadService) Reconcile(ctx context.Context, userID string) (*models.SquadLedger, error) {
	return m.ledger(m.Called(ctx, userID))
}

func (m *MockSquadService) AddPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return m.ledger(m.Called(ctx, userID, playerID))
}

func (m *MockSquadService) SellPlayer(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return m.ledger(m.Called(ctx, userID, playerID))
}

func (m *MockSquadService) SetCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return m.ledger(m.Called(ctx, userID, playerID))
}

func (m *MockSquadService) SetViceCaptain(ctx context.Context, userID string, playerID string) (*models.SquadLedger, error) {
	return m.ledger(m.Called(ctx, userID, playerID))
}

func (m *MockSquadService) Score(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockLeagueService struct {
	mock.Mock
}

func (m *MockLeagueService) league(args mock.Arguments) (*models.League, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.League), args.Error(1)
}

func (m *MockLeagueService) CreateLeague(ctx context.Context, name string, creatorID string) (*models.League, error) {
	return m.league(m.Called(ctx, name, creatorID))
}

func (m *MockLeagueService) JoinLeague(ctx context.Context, code string, userID string) (*models.League, error) {
	return m.league(m.Called(ctx, code, userID))
}

func (m *MockLeagueService) GetLeague(ctx context.Context, leagueID string, userID string) (*models.League, error) {
	return m.league(m.Called(ctx, leagueID, userID))
}

func (m *MockLeagueService) ListMyLeagues(ctx context.Context, userID string) ([]models.League, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.League), args.Error(1)
}

func (m *MockLeagueService) Leaderboard(ctx context.Context, leagueID string, userID string) (*models.Leaderboard, error) {
	args := m.Called(ctx, leagueID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

type MockMatchEventService struct {
	mock.Mock
}

func (m *MockMatchEventService) ApplyMatchEvent(ctx context.Context, playerID string, action string) (*models.PointsUpdate, error) {
	args := m.Called(ctx, playerID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointsUpdate), args.Error(1)
}

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerService) Catalog(ctx context.Context) (fantasy.Catalog, error) {
	args := m.Called(ctx)
	return args.Get(0).(fantasy.Catalog), args.Error(1)
}

func (m *MockPlayerService) UpsertPlayer(ctx context.Context, input services.UpsertPlayerInput) (*models.Player, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerService) UploadImage(ctx context.Context, playerID string, contentType string, file io.Reader) (*models.Player, error) {
	args := m.Called(ctx, playerID, contentType, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/botola-fantasy/live"
	"github.com/Dosada05/botola-fantasy/models"
	"github.com/Dosada05/botola-fantasy/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type leagueFixture struct {
	leagues *MockLeagueRepository
	ledgers *MockLedgerRepository
	users   *MockUserRepository
	hub     *recordingHub
	service *leagueService
}

func newLeagueFixture(catalog []models.Player) *leagueFixture {
	f := &leagueFixture{
		leagues: new(MockLeagueRepository),
		ledgers: new(MockLedgerRepository),
		users:   new(MockUserRepository),
		hub:     newRecordingHub(),
	}
	f.service = NewLeagueService(f.leagues, f.ledgers, f.users, stubCatalog{players: catalog}, f.hub, testLogger()).(*leagueService)
	return f
}

func codes(values ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		v := values[i%len(values)]
		i++
		return v, nil
	}
}

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := generateJoinCode()
		require.NoError(t, err)
		normalized, err := normalizeJoinCode(code)
		require.NoError(t, err)
		assert.Equal(t, code, normalized)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestNormalizeJoinCode(t *testing.T) {
	code, err := normalizeJoinCode("  ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)

	for _, bad := range []string{"", "ABC", "ABCDEFG", "AB-12C", "ÀBCDEF"} {
		_, err := normalizeJoinCode(bad)
		assert.ErrorIs(t, err, ErrInvalidJoinCode, bad)
	}
}

func TestLeagueService_CreateLeague(t *testing.T) {
	ctx := context.Background()

	t.Run("creator becomes sole member", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.service.newCode = codes("AAAAAA")
		f.leagues.On("Create", ctx, mock.AnythingOfType("*models.League")).Return(nil)

		league, err := f.service.CreateLeague(ctx, "  Derby Casablanca ", "u1")
		require.NoError(t, err)
		assert.Equal(t, "Derby Casablanca", league.Name)
		assert.Equal(t, "AAAAAA", league.Code)
		assert.Equal(t, "u1", league.CreatorID)
		assert.Equal(t, []string{"u1"}, league.Members)
		assert.NotEmpty(t, league.ID)
	})

	t.Run("retries on code collision", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.service.newCode = codes("AAAAAA", "BBBBBB")
		f.leagues.On("Create", ctx, mock.AnythingOfType("*models.League")).Return(repositories.ErrLeagueCodeConflict).Once()
		f.leagues.On("Create", ctx, mock.AnythingOfType("*models.League")).Return(nil).Once()

		league, err := f.service.CreateLeague(ctx, "Wydad fans", "u1")
		require.NoError(t, err)
		assert.Equal(t, "BBBBBB", league.Code)
		f.leagues.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.service.newCode = codes("AAAAAA")
		f.leagues.On("Create", ctx, mock.Anything).Return(repositories.ErrLeagueCodeConflict)

		_, err := f.service.CreateLeague(ctx, "Unlucky", "u1")
		assert.ErrorIs(t, err, ErrJoinCodeExhausted)
		f.leagues.AssertNumberOfCalls(t, "Create", maxJoinCodeAttempts)
	})

	t.Run("validates name", func(t *testing.T) {
		f := newLeagueFixture(nil)
		_, err := f.service.CreateLeague(ctx, "   ", "u1")
		assert.ErrorIs(t, err, ErrLeagueNameRequired)

		long := make([]rune, maxLeagueNameLength+1)
		for i := range long {
			long[i] = 'ب'
		}
		_, err = f.service.CreateLeague(ctx, string(long), "u1")
		assert.ErrorIs(t, err, ErrLeagueNameTooLong)
		f.leagues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLeagueService_JoinLeague(t *testing.T) {
	ctx := context.Background()
	league := &models.League{ID: "l1", Name: "Botola", Code: "ABC123", CreatorID: "u1", Members: []string{"u1"}}

	t.Run("appends member and notifies the room", func(t *testing.T) {
		f := newLeagueFixture(nil)
		joined := *league
		joined.Members = []string{"u1", "u2"}
		f.leagues.On("GetByCode", ctx, "ABC123").Return(league, nil)
		f.leagues.On("AddMember", ctx, "l1", "u2").Return(&joined, nil)

		got, err := f.service.JoinLeague(ctx, "abc123", "u2")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, got.Members)

		msgs := f.hub.Messages(live.LeagueRoom("l1"))
		require.Len(t, msgs, 1)
		assert.Equal(t, live.MessageLeagueMemberJoined, msgs[0].Type)
	})

	t.Run("already a member", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.leagues.On("GetByCode", ctx, "ABC123").Return(league, nil)

		_, err := f.service.JoinLeague(ctx, "ABC123", "u1")
		assert.ErrorIs(t, err, ErrAlreadyLeagueMember)
		f.leagues.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent join reported by repository", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.leagues.On("GetByCode", ctx, "ABC123").Return(league, nil)
		f.leagues.On("AddMember", ctx, "l1", "u3").Return(nil, repositories.ErrAlreadyMember)

		_, err := f.service.JoinLeague(ctx, "ABC123", "u3")
		assert.ErrorIs(t, err, ErrAlreadyLeagueMember)
		assert.Empty(t, f.hub.Messages(live.LeagueRoom("l1")))
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newLeagueFixture(nil)
		f.leagues.On("GetByCode", ctx, "ZZZZZZ").Return(nil, repositories.ErrLeagueNotFound)

		_, err := f.service.JoinLeague(ctx, "zzzzzz", "u2")
		assert.ErrorIs(t, err, ErrLeagueNotFound)
	})

	t.Run("malformed code never reaches the repository", func(t *testing.T) {
		f := newLeagueFixture(nil)
		_, err := f.service.JoinLeague(ctx, "abc", "u2")
		assert.ErrorIs(t, err, ErrInvalidJoinCode)
		f.leagues.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	})
}

func TestLeagueService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	catalog := []models.Player{
		{ID: "p1", Points: 10},
		{ID: "p2", Points: 6},
	}
	league := &models.League{ID: "l1", Name: "Botola", Code: "ABC123", CreatorID: "u1", Members: []string{"u1", "u2", "u3"}}

	t.Run("ranks members and tolerates a missing squad", func(t *testing.T) {
		f := newLeagueFixture(catalog)
		name := "Hakim"
		captain := "p2"

		f.leagues.On("GetByID", mock.Anything, "l1").Return(league, nil)
		f.users.On("ListByIDs", mock.Anything, league.Members).Return([]models.User{
			{ID: "u1", DisplayName: &name},
			{ID: "u2"},
		}, nil)
		f.ledgers.On("GetByUserID", mock.Anything, mock.Anything, "u1").
			Return(&models.SquadLedger{UserID: "u1", PlayerIDs: []string{"p1"}}, nil)
		f.ledgers.On("GetByUserID", mock.Anything, mock.Anything, "u2").
			Return(&models.SquadLedger{UserID: "u2", PlayerIDs: []string{"p1", "p2"}, CaptainID: &captain, PointsDeductions: 4}, nil)
		f.ledgers.On("GetByUserID", mock.Anything, mock.Anything, "u3").
			Return(nil, repositories.ErrLedgerNotFound)

		board, err := f.service.Leaderboard(ctx, "l1", "u1")
		require.NoError(t, err)
		require.Len(t, board.Entries, 3)

		assert.Equal(t, models.LeaderboardEntry{UserID: "u2", Label: "u2", Score: 18, Rank: 1}, board.Entries[0])
		assert.Equal(t, models.LeaderboardEntry{UserID: "u1", Label: "Hakim", Score: 10, Rank: 2}, board.Entries[1])
		assert.Equal(t, "u3", board.Entries[2].UserID)
		assert.Equal(t, 0, board.Entries[2].Score)
		assert.Equal(t, 3, board.Entries[2].Rank)
	})

	t.Run("non-member is refused", func(t *testing.T) {
		f := newLeagueFixture(catalog)
		f.leagues.On("GetByID", mock.Anything, "l1").Return(league, nil)

		_, err := f.service.Leaderboard(ctx, "l1", "outsider")
		assert.ErrorIs(t, err, ErrNotLeagueMember)
		f.ledgers.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure aborts", func(t *testing.T) {
		f := newLeagueFixture(catalog)
		boom := errors.New("connection reset")
		f.leagues.On("GetByID", mock.Anything, "l1").Return(league, nil)
		f.users.On("ListByIDs", mock.Anything, mock.Anything).Return([]models.User{}, nil)
		f.ledgers.On("GetByUserID", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

		_, err := f.service.Leaderboard(ctx, "l1", "u1")
		assert.ErrorIs(t, err, boom)
	})
}

func TestLeagueService_ListMyLeagues(t *testing.T) {
	ctx := context.Background()
	f := newLeagueFixture(nil)
	f.leagues.On("ListByMember", ctx, "u1").Return([]models.League{{ID: "l1"}, {ID: "l2"}}, nil)

	leagues, err := f.service.ListMyLeagues(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, leagues, 2)
}

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/repository"
	"github.com/oggyb/accountadate/internal/testutil"
)

func setupStore(t *testing.T) (*repository.Store, []uint64) {
	t.Helper()
	database := testutil.NewDB(t)
	ids := testutil.CreateUsers(t, database, 4)
	return repository.NewStore(database, time.Second), ids
}

func TestAccountCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.NewDB(t), time.Second)

	u := &db.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, store.Accounts.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := &db.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h"}
	err := store.Accounts.Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	exists, err := store.Accounts.ExistsByEmail(ctx, "  ALICE@example.com ")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := store.Accounts.FindByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = store.Accounts.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	require.NoError(t, store.Accounts.UpdateProfile(ctx, ids[0], "hello", []string{"jazz", "hiking"}, "avatar.png"))

	u, err := store.Accounts.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "hello", u.Bio)
	assert.Equal(t, []string{"jazz", "hiking"}, u.Interests)
	assert.Equal(t, "avatar.png", u.AvatarRef)

	err = store.Accounts.UpdateProfile(ctx, 999, "x", []string{"y"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSwipeUpsertLatestPolarityWins(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	a, b := ids[0], ids[1]

	require.NoError(t, store.Swipes.Upsert(ctx, a, b, domain.PolarityLike))
	require.NoError(t, store.Swipes.Upsert(ctx, a, b, domain.PolarityLike))
	require.NoError(t, store.Swipes.Upsert(ctx, a, b, domain.PolarityPass))

	var count int64
	require.NoError(t, store.DB().Model(&db.Swipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	s, err := store.Swipes.Get(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, domain.PolarityPass, s.Polarity)

	liked, err := store.Swipes.HasLiked(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestListAdmirersOneSidedOnly(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	me := ids[0]

	// ids[1] liked me and I liked back -> mutual, excluded
	require.NoError(t, store.Swipes.Upsert(ctx, ids[1], me, domain.PolarityLike))
	require.NoError(t, store.Swipes.Upsert(ctx, me, ids[1], domain.PolarityLike))
	// ids[2] liked me, I passed -> excluded
	require.NoError(t, store.Swipes.Upsert(ctx, ids[2], me, domain.PolarityLike))
	require.NoError(t, store.Swipes.Upsert(ctx, me, ids[2], domain.PolarityPass))
	// ids[3] liked me, unanswered -> admirer
	require.NoError(t, store.Swipes.Upsert(ctx, ids[3], me, domain.PolarityLike))

	admirers, next, err := store.Swipes.ListAdmirers(ctx, me, nil, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, admirers, 1)
	assert.Equal(t, ids[3], admirers[0].ActorID)

	count, err := store.Swipes.CountAdmirers(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListAdmirersPagination(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	me := ids[0]
	for _, id := range ids[1:] {
		require.NoError(t, store.Swipes.Upsert(ctx, id, me, domain.PolarityLike))
	}

	seen := map[uint64]bool{}
	var token *string
	for page := 0; page < 5; page++ {
		admirers, next, err := store.Swipes.ListAdmirers(ctx, me, token, 1)
		require.NoError(t, err)
		for _, a := range admirers {
			assert.False(t, seen[a.ActorID], "actor %d returned twice", a.ActorID)
			seen[a.ActorID] = true
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Len(t, seen, 3)
}

func TestListCandidatesSkipsSwiped(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	me := ids[0]
	require.NoError(t, store.Swipes.Upsert(ctx, me, ids[2], domain.PolarityPass))

	first, next, err := store.Accounts.ListCandidates(ctx, me, nil, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, ids[1], first[0].ID)
	require.NotNil(t, next)

	rest, next, err := store.Accounts.ListCandidates(ctx, me, next, 10)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[3], rest[0].ID)
}

func TestCreateForPairOneRowPerPair(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	m1, created, err := store.Matches.CreateForPair(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.True(t, created)

	m2, created, err := store.Matches.CreateForPair(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m1.ID, m2.ID)

	var count int64
	require.NoError(t, store.DB().Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEndMatchIsTerminal(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	m, _, err := store.Matches.CreateForPair(ctx, ids[0], ids[1])
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, store.Matches.End(ctx, m.ID, ids[0], domain.ReasonOther, now))
	assert.ErrorIs(t, store.Matches.End(ctx, m.ID, ids[1], domain.ReasonOther, now), domain.ErrMatchNotActive)
	assert.ErrorIs(t, store.Matches.End(ctx, 999, ids[1], domain.ReasonOther, now), domain.ErrNotFound)

	active, err := store.Matches.ListActiveForAccount(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, active)

	ended, err := store.Matches.CountEndedBy(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), ended)

	total, err := store.Matches.CountForAccount(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetForPartyRejectsOutsiders(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	m, _, err := store.Matches.CreateForPair(ctx, ids[0], ids[1])
	require.NoError(t, err)

	_, err = store.Matches.GetForParty(ctx, m.ID, ids[1], true)
	require.NoError(t, err)
	_, err = store.Matches.GetForParty(ctx, m.ID, ids[2], false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessagesOrderingAndAfter(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	m, _, err := store.Matches.CreateForPair(ctx, ids[0], ids[1])
	require.NoError(t, err)

	latest, err := store.Messages.Latest(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	var last uint64
	for i, body := range []string{"a", "b", "c"} {
		msg := &db.Message{MatchID: m.ID, SenderID: ids[i%2], Body: body}
		require.NoError(t, store.Messages.Create(ctx, msg))
		if i == 0 {
			last = msg.ID
		}
	}

	all, err := store.Messages.List(ctx, m.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.Before(all[i-1].CreatedAt))
	}

	after, err := store.Messages.List(ctx, m.ID, last, 0)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, "b", after[0].Body)

	latest, err = store.Messages.Latest(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", latest.Body)

	convs, err := store.Messages.CountConversationsBySender(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), convs)
}

func TestBadgeAwardIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	now := time.Now().UTC()

	ok, err := store.Badges.Award(ctx, ids[0], domain.BadgeMatchMaker, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Badges.Award(ctx, ids[0], domain.BadgeMatchMaker, now)
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := store.Badges.List(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.BadgeMatchMaker, rows[0].BadgeID)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		require.NoError(t, tx.Swipes.Upsert(ctx, ids[0], ids[1], domain.PolarityLike))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Swipes.Get(ctx, ids[0], ids[1])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithTxTimeout(t *testing.T) {
	database := testutil.NewDB(t)
	store := repository.NewStore(database, 20*time.Millisecond)

	err := store.WithTx(context.Background(), func(ctx context.Context, tx *repository.Store) error {
		time.Sleep(50 * time.Millisecond)
		_, err := tx.Accounts.ExistsByEmail(ctx, "a@b.co")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestLockPairReportsMissingAccounts(t *testing.T) {
	ctx := context.Background()
	store, ids := setupStore(t)

	err := store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		users, err := tx.Accounts.LockPair(ctx, ids[2], ids[0])
		require.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "user3", users[ids[2]].Username)

		users, err = tx.Accounts.LockPair(ctx, 999, ids[1])
		require.NoError(t, err)
		assert.Len(t, users, 1)
		_, ok := users[999]
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

package badge_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/service/badge"
	tu "github.com/oggyb/accountadate/internal/testutil"
)

var base = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T, users int) (*badge.Service, *app.AppContext, []uint64) {
	t.Helper()
	appCtx := tu.NewAppContext(t)
	appCtx.Now = func() time.Time { return base }
	ids := tu.CreateUsers(t, appCtx.DB, users)
	return badge.NewBadgeService(appCtx), appCtx, ids
}

// matchWithOthers creates one match between me and each of others.
func matchWithOthers(t *testing.T, appCtx *app.AppContext, me uint64, others []uint64) []*db.Match {
	t.Helper()
	out := make([]*db.Match, 0, len(others))
	for _, o := range others {
		m, _, err := appCtx.Store.Matches.CreateForPair(context.Background(), me, o)
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func progressOf(t *testing.T, eval *badge.Evaluation, id domain.BadgeID) badge.Progress {
	t.Helper()
	for _, p := range eval.Progress {
		if p.Badge.ID == id {
			return p
		}
	}
	t.Fatalf("badge %s missing from evaluation", id)
	return badge.Progress{}
}

func TestMatchMakerThreshold(t *testing.T) {
	ctx := context.Background()

	t.Run("four matches", func(t *testing.T) {
		svc, appCtx, ids := setupService(t, 5)
		matchWithOthers(t, appCtx, ids[0], ids[1:5])

		eval, err := svc.Evaluate(ctx, ids[0])
		require.NoError(t, err)
		p := progressOf(t, eval, domain.BadgeMatchMaker)
		assert.Equal(t, int64(4), p.Value)
		assert.False(t, p.Earned)
		assert.InDelta(t, 0.8, p.Ratio(), 1e-9)
		assert.NotContains(t, eval.Earned, domain.BadgeMatchMaker)
	})

	t.Run("five matches", func(t *testing.T) {
		svc, appCtx, ids := setupService(t, 6)
		matchWithOthers(t, appCtx, ids[0], ids[1:6])
		before := testutil.ToFloat64(metrics.BadgesAwarded.WithLabelValues(string(domain.BadgeMatchMaker)))

		eval, err := svc.Evaluate(ctx, ids[0])
		require.NoError(t, err)
		p := progressOf(t, eval, domain.BadgeMatchMaker)
		assert.True(t, p.Earned)
		assert.True(t, p.NewlyEarned)
		assert.Equal(t, 1.0, p.Ratio())
		assert.Equal(t, []domain.BadgeID{domain.BadgeMatchMaker}, eval.Earned)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.BadgesAwarded.WithLabelValues(string(domain.BadgeMatchMaker))))

		again, err := svc.Evaluate(ctx, ids[0])
		require.NoError(t, err)
		p = progressOf(t, again, domain.BadgeMatchMaker)
		assert.True(t, p.Earned)
		assert.False(t, p.NewlyEarned)
	})
}

func TestEarnedBadgesNeverShrink(t *testing.T) {
	ctx := context.Background()
	svc, appCtx, ids := setupService(t, 6)
	matches := matchWithOthers(t, appCtx, ids[0], ids[1:6])

	_, err := svc.Evaluate(ctx, ids[0])
	require.NoError(t, err)

	// the metric drops below the threshold, the badge stays
	require.NoError(t, appCtx.DB.Delete(&db.Match{}, matches[0].ID).Error)

	eval, err := svc.Evaluate(ctx, ids[0])
	require.NoError(t, err)
	p := progressOf(t, eval, domain.BadgeMatchMaker)
	assert.Equal(t, int64(4), p.Value)
	assert.True(t, p.Earned)
	assert.Contains(t, eval.Earned, domain.BadgeMatchMaker)
}

func TestRespectfulEnder(t *testing.T) {
	ctx := context.Background()
	svc, appCtx, ids := setupService(t, 5)
	me := ids[0]
	matches := matchWithOthers(t, appCtx, me, ids[1:5])

	// ended by the counterpart, does not count for me
	require.NoError(t, appCtx.Store.Matches.End(ctx, matches[0].ID, ids[1], domain.ReasonOther, base))
	for _, m := range matches[1:3] {
		require.NoError(t, appCtx.Store.Matches.End(ctx, m.ID, me, domain.ReasonNotCompatible, base))
	}

	eval, err := svc.Evaluate(ctx, me)
	require.NoError(t, err)
	p := progressOf(t, eval, domain.BadgeRespectfulEnder)
	assert.Equal(t, int64(2), p.Value)
	assert.False(t, p.Earned)

	require.NoError(t, appCtx.Store.Matches.End(ctx, matches[3].ID, me, domain.ReasonFoundSomeoneElse, base))

	eval, err = svc.Evaluate(ctx, me)
	require.NoError(t, err)
	p = progressOf(t, eval, domain.BadgeRespectfulEnder)
	assert.Equal(t, int64(3), p.Value)
	assert.True(t, p.NewlyEarned)
	assert.Equal(t, int64(4), progressOf(t, eval, domain.BadgeMatchMaker).Value)
}

func TestConversationStarterAndActiveDater(t *testing.T) {
	ctx := context.Background()
	svc, appCtx, ids := setupService(t, 6)
	me := ids[0]
	matches := matchWithOthers(t, appCtx, me, ids[1:6])

	start := base.Add(-7*24*time.Hour - time.Minute)
	for i, m := range matches {
		msg := db.Message{MatchID: m.ID, SenderID: me, Body: "hey", CreatedAt: start.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, appCtx.DB.Create(&msg).Error)
	}
	// a second message in the same match is the same conversation
	require.NoError(t, appCtx.DB.Create(&db.Message{MatchID: matches[0].ID, SenderID: me, Body: "again", CreatedAt: base}).Error)

	eval, err := svc.Evaluate(ctx, me)
	require.NoError(t, err)

	cs := progressOf(t, eval, domain.BadgeConversationStarter)
	assert.Equal(t, int64(5), cs.Value)
	assert.True(t, cs.NewlyEarned)

	ad := progressOf(t, eval, domain.BadgeActiveDater)
	assert.Equal(t, int64(7), ad.Value)
	assert.True(t, ad.Earned)

	// counterparts never wrote anything
	eval, err = svc.Evaluate(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, int64(0), progressOf(t, eval, domain.BadgeActiveDater).Value)
	assert.Equal(t, int64(0), progressOf(t, eval, domain.BadgeConversationStarter).Value)
}

func TestActiveDaterCountsWholeDays(t *testing.T) {
	ctx := context.Background()
	svc, appCtx, ids := setupService(t, 2)
	m := matchWithOthers(t, appCtx, ids[0], ids[1:2])[0]

	msg := db.Message{MatchID: m.ID, SenderID: ids[0], Body: "hi", CreatedAt: base.Add(-7*24*time.Hour + time.Second)}
	require.NoError(t, appCtx.DB.Create(&msg).Error)

	eval, err := svc.Evaluate(ctx, ids[0])
	require.NoError(t, err)
	p := progressOf(t, eval, domain.BadgeActiveDater)
	assert.Equal(t, int64(6), p.Value)
	assert.False(t, p.Earned)
}

func TestEvaluateUnknownAccount(t *testing.T) {
	svc, _, _ := setupService(t, 1)
	_, err := svc.Evaluate(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

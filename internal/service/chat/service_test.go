package chat_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/service/chat"
	tu "github.com/oggyb/accountadate/internal/testutil"
)

// fixture: users 1 and 2 share match m, user 3 is an outsider.
type fixture struct {
	svc    *chat.Service
	appCtx *app.AppContext
	mr     *miniredis.Miniredis
	ids    []uint64
	match  *db.Match
}

func setup(t *testing.T) *fixture {
	t.Helper()

	rc, mr := tu.NewRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(tu.Config(), tu.NewDB(t), rc, logger)

	ids := tu.CreateUsers(t, appCtx.DB, 3)
	m, _, err := appCtx.Store.Matches.CreateForPair(context.Background(), ids[0], ids[1])
	require.NoError(t, err)

	return &fixture{svc: chat.NewChatService(appCtx), appCtx: appCtx, mr: mr, ids: ids, match: m}
}

// next waits for one batch from sub.
func next(t *testing.T, sub *chat.Subscription, wait time.Duration) []db.Message {
	t.Helper()
	select {
	case batch, ok := <-sub.Messages():
		require.True(t, ok, "subscription closed")
		return batch
	case <-time.After(wait):
		t.Fatalf("no batch within %s", wait)
		return nil
	}
}

func bodies(msgs []db.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Body)
	}
	return out
}

func TestPostAndListMessages(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	before := testutil.ToFloat64(metrics.MessagesPosted)

	first, err := f.svc.PostMessage(ctx, f.match.ID, f.ids[0], "  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", first.Body)
	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[1], "hello")
	require.NoError(t, err)
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.MessagesPosted))

	all, err := f.svc.ListMessages(ctx, f.match.ID, f.ids[1], 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "hello"}, bodies(all))
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.Before(all[i-1].CreatedAt))
	}

	after, err := f.svc.ListMessages(ctx, f.match.ID, f.ids[0], first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, bodies(after))
}

func TestPostMessageRejections(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.PostMessage(ctx, f.match.ID, f.ids[0], " \n\t ")
	assert.ErrorIs(t, err, domain.ErrEmptyBody)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[2], "let me in")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.ListMessages(ctx, f.match.ID, f.ids[2], 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.PostMessage(ctx, 999, f.ids[0], "hello?")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEndedMatchIsReadOnly(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.PostMessage(ctx, f.match.ID, f.ids[0], "bye")
	require.NoError(t, err)
	require.NoError(t, f.appCtx.Store.Matches.End(ctx, f.match.ID, f.ids[0], domain.ReasonOther, time.Now().UTC()))

	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[1], "wait")
	assert.ErrorIs(t, err, domain.ErrMatchNotActive)

	msgs, err := f.svc.ListMessages(ctx, f.match.ID, f.ids[1], 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"bye"}, bodies(msgs))
}

func TestPostMessagePublishesNotification(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	ps, err := f.appCtx.RedisCache.SubscribeChat(ctx, f.match.ID)
	require.NoError(t, err)
	defer ps.Close()

	msg, err := f.svc.PostMessage(ctx, f.match.ID, f.ids[0], "ping")
	require.NoError(t, err)

	select {
	case n := <-ps.Channel():
		assert.Equal(t, "chat:match:1", n.Channel)
		assert.Equal(t, "1", n.Payload)
		assert.Equal(t, uint64(1), msg.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification published")
	}
}

func TestWatchDeliversBacklogThenNewMessages(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	// only a notification can wake the watcher in time
	f.appCtx.Config.Chat.PollInterval = time.Hour

	old, err := f.svc.PostMessage(ctx, f.match.ID, f.ids[0], "old")
	require.NoError(t, err)
	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[1], "backlog")
	require.NoError(t, err)

	sub, err := f.svc.Watch(ctx, f.match.ID, f.ids[0], old.ID)
	require.NoError(t, err)
	require.NoError(t, sub.Start(ctx))
	defer sub.Stop()

	assert.Equal(t, []string{"backlog"}, bodies(next(t, sub, 2*time.Second)))

	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[1], "live")
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, bodies(next(t, sub, 2*time.Second)))
}

func TestWatchFallsBackToPolling(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.mr.Close()

	sub, err := f.svc.Watch(ctx, f.match.ID, f.ids[1], 0)
	require.NoError(t, err)
	require.NoError(t, sub.Start(ctx))
	defer sub.Stop()

	_, err = f.svc.PostMessage(ctx, f.match.ID, f.ids[0], "polled")
	require.NoError(t, err)
	assert.Equal(t, []string{"polled"}, bodies(next(t, sub, 2*time.Second)))
}

func TestWatchRejectsOutsider(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Watch(context.Background(), f.match.ID, f.ids[2], 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscriptionStop(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	sub, err := f.svc.Watch(ctx, f.match.ID, f.ids[0], 0)
	require.NoError(t, err)
	sub.Stop() // before Start is a no-op

	require.NoError(t, sub.Start(ctx))
	assert.Error(t, sub.Start(ctx))

	sub.Stop()
	sub.Stop()

	_, ok := <-sub.Messages()
	assert.False(t, ok)
	assert.NoError(t, sub.Err())
}

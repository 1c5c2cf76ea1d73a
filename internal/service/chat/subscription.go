package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/metrics"
)

const defaultPollInterval = time.Second

// Subscription streams new messages of one match in batches.
//
// Lifecycle:
//   - Start subscribes to the Redis channel of the match and launches the
//     watch goroutine. Without Redis it only polls.
//   - The goroutine re-reads storage right away, on every notification and
//     on every poll tick, and sends whatever is newer than the last
//     delivered message.
//   - Stop (or canceling the Start context) tears down the ticker and the
//     Redis subscription, waits for the goroutine and closes Messages.
type Subscription struct {
	svc      *Service
	matchID  uint64
	lastID   uint64
	interval time.Duration

	out    chan []db.Message
	done   chan struct{}
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	err     error
}

func newSubscription(svc *Service, matchID, afterID uint64) *Subscription {
	interval := defaultPollInterval
	if cfg := svc.appCtx.Config; cfg != nil && cfg.Chat.PollInterval > 0 {
		interval = cfg.Chat.PollInterval
	}
	return &Subscription{
		svc:      svc,
		matchID:  matchID,
		lastID:   afterID,
		interval: interval,
		out:      make(chan []db.Message),
		done:     make(chan struct{}),
	}
}

// Start launches the watch goroutine. It may be called once.
func (s *Subscription) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("subscription already started")
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)

	var pubsub *redis.PubSub
	if rc := s.svc.appCtx.RedisCache; rc != nil {
		ps, err := rc.SubscribeChat(ctx, s.matchID)
		if err != nil {
			s.svc.appCtx.Logger.Warn("chat subscribe failed, polling only", "match", s.matchID, "err", err)
		} else {
			pubsub = ps
		}
	}

	metrics.ChatWatchers.Inc()
	go s.run(ctx, pubsub)
	return nil
}

// Messages delivers batches oldest first. It is closed when the
// subscription ends.
func (s *Subscription) Messages() <-chan []db.Message {
	return s.out
}

// Stop ends the subscription and waits for the goroutine to exit. Safe to
// call more than once and before Start.
func (s *Subscription) Stop() {
	s.mu.Lock()
	started := s.started
	cancel := s.cancel
	s.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-s.done
}

// Err reports why the subscription ended on its own, if it did.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription) run(ctx context.Context, pubsub *redis.PubSub) {
	defer close(s.done)
	defer close(s.out)
	defer metrics.ChatWatchers.Dec()

	var notify <-chan *redis.Message
	if pubsub != nil {
		defer pubsub.Close()
		notify = pubsub.Channel()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if !s.poll(ctx) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case _, ok := <-notify:
			if !ok {
				notify = nil
			}
		}
	}
}

// poll sends one batch if there is anything new. It returns false when
// the subscription must end.
func (s *Subscription) poll(ctx context.Context) bool {
	msgs, err := s.svc.messagesAfter(ctx, s.matchID, s.lastID)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.svc.appCtx.Logger.Error("chat poll failed", "match", s.matchID, "err", err)
		return false
	}
	if len(msgs) == 0 {
		return true
	}

	select {
	case s.out <- msgs:
	case <-ctx.Done():
		return false
	}
	for _, m := range msgs {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	return true
}

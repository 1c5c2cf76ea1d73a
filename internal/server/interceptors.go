package server

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	svcErr "github.com/oggyb/accountadate/internal/errors"
	"github.com/oggyb/accountadate/internal/logger"
	"github.com/oggyb/accountadate/internal/metrics"
)

// requiresSession reports whether method needs a bearer token. Health and
// reflection live under /grpc.* and are open.
func requiresSession(method string) bool {
	return !api.PublicMethods[method] && !strings.HasPrefix(method, "/grpc.")
}

// authenticate resolves the "authorization: Bearer <token>" header into
// an account id on the context.
func authenticate(ctx context.Context, tokens *auth.TokenManager) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing bearer token")
	}
	raw, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
	}
	id, err := tokens.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return auth.WithAccount(ctx, id), nil
}

func authUnary(tokens *auth.TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !requiresSession(info.FullMethod) {
			return handler(ctx, req)
		}
		ctx, err := authenticate(ctx, tokens)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func authStream(tokens *auth.TokenManager) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if !requiresSession(info.FullMethod) {
			return handler(srv, ss)
		}
		ctx, err := authenticate(ss.Context(), tokens)
		if err != nil {
			return err
		}
		return handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
	}
}

// loggingUnary tags each call with a req_id, puts the tagged logger on the
// context and logs the outcome. It also feeds the RPC metrics.
func loggingUnary(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		log := base.With("req_id", uuid.NewString(), "method", info.FullMethod)
		start := time.Now()

		resp, err := handler(logger.IntoContext(ctx, log), req)
		finish(log, info.FullMethod, start, err)
		return resp, err
	}
}

func loggingStream(base *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		log := base.With("req_id", uuid.NewString(), "method", info.FullMethod)
		start := time.Now()

		err := handler(srv, &contextStream{ServerStream: ss, ctx: logger.IntoContext(ss.Context(), log)})
		finish(log, info.FullMethod, start, err)
		return err
	}
}

func finish(log *slog.Logger, method string, start time.Time, err error) {
	elapsed := time.Since(start)
	code := status.Code(err)

	metrics.RPCRequests.WithLabelValues(method, code.String()).Inc()
	metrics.RPCLatency.WithLabelValues(method).Observe(elapsed.Seconds())

	switch code {
	case codes.OK, codes.Canceled:
		log.Debug("rpc finished", "code", code.String(), "duration", elapsed)
	case codes.Internal, codes.Unknown, codes.DataLoss:
		log.Error("rpc failed", "code", code.String(), "duration", elapsed, "err", err)
	default:
		log.Info("rpc rejected", "code", code.String(), "duration", elapsed, "err", err)
	}
}

// contextStream swaps the context of a server stream.
type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context { return s.ctx }

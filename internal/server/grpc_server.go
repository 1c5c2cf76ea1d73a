package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/oggyb/accountadate/internal/app"
)

// shutdownGrace bounds GracefulStop; open chat watches are cut after it.
const shutdownGrace = 5 * time.Second

// GRPCServer is the gRPC server with interceptors, health and reflection.
type GRPCServer struct {
	srv    *grpc.Server
	health *health.Server
	appCtx *app.AppContext
}

// NewGRPCServer builds the server and registers all provided services.
//
// Interceptor order: logging + metrics, then session auth. Register, Login
// and EmailExists as well as health and reflection need no token.
func NewGRPCServer(appCtx *app.AppContext, registrars ...Registrar) *GRPCServer {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingUnary(appCtx.Logger),
			authUnary(appCtx.Tokens),
		),
		grpc.ChainStreamInterceptor(
			loggingStream(appCtx.Logger),
			authStream(appCtx.Tokens),
		),
	)

	// register all services
	for _, r := range registrars {
		r.Register(srv)
	}

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// enable reflection for easier debugging with grpcurl
	reflection.Register(srv)

	return &GRPCServer{srv: srv, health: hs, appCtx: appCtx}
}

// Serve accepts connections on lis until ctx is done, then drains.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(lis) }()

	select {
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.appCtx.Logger.Info("stopping gRPC server")
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(shutdownGrace):
		s.srv.Stop()
		<-stopped
	}
	return <-errCh
}

// StartGRPCServer listens on the configured address and serves until ctx
// is done.
func StartGRPCServer(ctx context.Context, appCtx *app.AppContext, registrars ...Registrar) error {
	cfg := appCtx.Config
	addr := fmt.Sprintf("%s:%s", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	appCtx.Logger.Info("starting gRPC server", "addr", addr)
	return NewGRPCServer(appCtx, registrars...).Serve(ctx, lis)
}

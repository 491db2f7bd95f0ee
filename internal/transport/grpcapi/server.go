// Package grpcapi serves the pull and profile operations over gRPC.
package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/xtding233/gacha-bot/internal/logger"
	"github.com/xtding233/gacha-bot/internal/profile"
	"github.com/xtding233/gacha-bot/internal/pull"
)

const requestIDMetadataKey = "x-request-id"

// Server hosts the gacha gRPC API and the standard health service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
}

// NewServer registers the gacha and health services.
func NewServer(pulls pull.Service, profiles profile.Service) *Server {
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(requestIDInterceptor, loggingInterceptor))
	healthServer := health.NewServer()

	RegisterGachaServer(grpcServer, &service{pulls: pulls, profiles: profiles})
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, health: healthServer}
}

// Serve serves on lis until ctx is cancelled, then stops gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	slog.Default().Info("gRPC server listening", "addr", lis.Addr().String())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		return ignoreStopped(<-serveErr)
	case err := <-serveErr:
		return ignoreStopped(err)
	}
}

func ignoreStopped(err error) error {
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

func requestIDInterceptor(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	id := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(requestIDMetadataKey); len(vals) > 0 {
			id = vals[0]
		}
	}
	if id == "" {
		id = logger.GenerateRequestID()
	}
	return handler(logger.WithRequestID(ctx, id), req)
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logger.FromContext(ctx).Info("gRPC call completed",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds())
	return resp, err
}

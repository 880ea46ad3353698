package grpc

import (
	"context"
	"sort"

	"employee_project/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// HealthServer answers grpc.health.v1 probes. The empty service name
// reports SERVING only when every registered checker passes.
type HealthServer struct {
	healthpb.UnimplementedHealthServer
	checkers map[string]Checker
}

func NewHealthServer(checkers map[string]Checker) *HealthServer {
	named := make(map[string]Checker, len(checkers))
	for name, check := range checkers {
		if name == "" || check == nil {
			continue
		}
		named[name] = check
	}
	return &HealthServer{checkers: named}
}

func (s *HealthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	service := req.GetService()
	if service == "" {
		for _, name := range s.names() {
			if !s.serving(ctx, name) {
				return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
			}
		}
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
	}

	if _, ok := s.checkers[service]; !ok {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", service)
	}
	if !s.serving(ctx, service) {
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

func (s *HealthServer) serving(ctx context.Context, name string) bool {
	if err := s.checkers[name](ctx); err != nil {
		logger.Logger.Warn("Health check failed", zap.String("service", name), zap.Error(err))
		return false
	}
	return true
}

func (s *HealthServer) names() []string {
	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer builds a gRPC server exposing health and reflection.
func NewServer(health *HealthServer, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, health)
	reflection.Register(srv)
	return srv
}

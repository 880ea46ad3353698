package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		checkers map[string]Checker
		service  string
		want     healthpb.HealthCheckResponse_ServingStatus
	}{
		{"all up", map[string]Checker{"database": ok, "sessions": ok}, "", healthpb.HealthCheckResponse_SERVING},
		{"one down", map[string]Checker{"database": ok, "sessions": down}, "", healthpb.HealthCheckResponse_NOT_SERVING},
		{"named up", map[string]Checker{"database": ok, "sessions": down}, "database", healthpb.HealthCheckResponse_SERVING},
		{"named down", map[string]Checker{"database": down}, "database", healthpb.HealthCheckResponse_NOT_SERVING},
		{"no checkers", nil, "", healthpb.HealthCheckResponse_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewHealthServer(tt.checkers)
			resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: tt.service})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.GetStatus())
		})
	}
}

func TestHealthCheckUnknownService(t *testing.T) {
	srv := NewHealthServer(map[string]Checker{"database": ok})
	_, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "cache"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthOverConnection(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(NewHealthServer(map[string]Checker{"database": ok}))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: "database"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

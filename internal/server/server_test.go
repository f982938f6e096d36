package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/handler"
	myGRPC "github.com/MKhiriev/allocation-ledger/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/allocation-ledger/internal/handler/http"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newTestHandlers(cfg config.Server) *handler.Handlers {
	services := &service.Services{}
	return &handler.Handlers{
		HTTP: myHTTP.NewHandler(services, cfg, logger.Nop()),
		GRPC: myGRPC.NewHandler(services, logger.Nop()),
	}
}

// run starts srv in the background and returns a stop func that waits for
// RunServer to return.
func run(t *testing.T, srv Server) func() error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
			return nil
		}
	}
}

// ── NewServer ─────────────────────────────────────────────────────────────────

func TestNewServer_NoAddresses(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_AddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{GRPCAddress: busy.Addr().String()}
	srv, err := NewServer(newTestHandlers(cfg), cfg, logger.Nop())

	require.ErrorIs(t, err, errListening)
	assert.Nil(t, srv)
}

// ── lifecycle ─────────────────────────────────────────────────────────────────

func TestServer_ServesHTTPAndGRPCUntilCancelled(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	handlers := newTestHandlers(cfg)
	handlers.GRPC.SetServing(true)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	s := srv.(*server)

	stop := run(t, srv)

	resp, err := http.Get("http://" + s.httpServer.Addr().String() + "/does-not-exist")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, err := grpc.NewClient(s.gRPCServer.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.GetStatus())

	require.NoError(t, stop())

	_, err = http.Get("http://" + s.httpServer.Addr().String() + "/")
	assert.Error(t, err)
}

func TestServer_ShutdownIsIdempotent(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0"}
	srv, err := NewServer(newTestHandlers(cfg), cfg, logger.Nop())
	require.NoError(t, err)

	stop := run(t, srv)
	require.NoError(t, stop())

	assert.NotPanics(t, srv.Shutdown)
}

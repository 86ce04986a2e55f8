package grpc

import (
	"fmt"
	log "log/slog"
	"net"
	"sync"

	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service; it is SERVING while the Discord gateway is connected.
const ServiceName = "botswatter.Gateway"

// HealthServer exposes the standard grpc.health.v1 service.
type HealthServer struct {
	address string
	server  *grpc.Server
	health  *health.Server

	mu  sync.Mutex
	lis net.Listener
}

// NewHealthServer creates a server that will listen on address once Listen is called.
func NewHealthServer(address string) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	server := grpc.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	return &HealthServer{address: address, server: server, health: hs}
}

// Listen binds the listening socket and returns its address.
func (h *HealthServer) Listen() (net.Addr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lis != nil {
		return h.lis.Addr(), nil
	}
	lis, err := net.Listen("tcp", h.address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", h.address, err)
	}
	h.lis = lis
	return lis.Addr(), nil
}

// Serve blocks until Stop is called. It calls Listen if needed.
func (h *HealthServer) Serve() error {
	addr, err := h.Listen()
	if err != nil {
		return err
	}
	log.Info("gRPC health service listening", "address", addr.String())
	if err := h.server.Serve(h.lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("gRPC health service: %w", err)
	}
	return nil
}

// SetServing updates the gateway status.
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(ServiceName, status)
}

// Stop marks every service NOT_SERVING and stops the server.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}

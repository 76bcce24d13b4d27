package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/libris/internal/logging"
	pb "github.com/dmitrijs2005/libris/internal/proto"
	"github.com/dmitrijs2005/libris/internal/server/services"
	"github.com/dmitrijs2005/libris/internal/shared"
)

// GRPCServer serves library.LibraryService on top of the lifecycle and
// catalog services.
type GRPCServer struct {
	pb.UnimplementedLibraryServiceServer

	address   string
	lifecycle services.Lifecycle
	catalog   services.Catalog
	logger    logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, lc services.Lifecycle, c services.Catalog) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		lifecycle: lc,
		catalog:   c,
	}
}

// newServer builds the grpc.Server with the library and health services.
func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.loggingInterceptor,
		s.recoveryInterceptor,
	))
	pb.RegisterLibraryServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(shared.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}

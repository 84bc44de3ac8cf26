package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
)

// Server wraps the ConnectorGateway gRPC server, grounded on the
// teacher's internal/adapters/grpc.Server shape (grpcServer/logger/
// port), forcing the JSON codec registered in codec.go in place of the
// protobuf wire format.
type Server struct {
	grpcServer *grpclib.Server
	logger     *zap.Logger
	port       string
}

// NewServer builds a Server around edge, ready to Start once bound.
func NewServer(port string, logger *zap.Logger, edge *Edge) *Server {
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(recoveryInterceptor, loggingInterceptor, errorMappingInterceptor),
		grpclib.ForceServerCodec(jsonCodec{}),
	)
	RegisterConnectorGatewayServer(grpcServer, edge)
	return &Server{grpcServer: grpcServer, logger: logger, port: port}
}

// Start listens on the configured port and blocks serving RPCs until
// the listener errors or Stop is called.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("starting gRPC server", zap.String("port", s.port))

	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("stopping gRPC server")
	s.grpcServer.GracefulStop()
}

package server

import "google.golang.org/grpc"

// Registrar is a common interface for all gRPC service registrars.
// account, explore, match, chat and badge each provide one.
type Registrar interface {
	Register(s *grpc.Server)
}

package badge

import (
	"google.golang.org/grpc"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/app"
)

// Registrar ties the Badge service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Badge service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Badge service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	api.RegisterBadgeServiceServer(s, NewHandler(NewBadgeService(r.appCtx)))
}

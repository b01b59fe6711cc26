//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"soundmap/application/ports"
	"soundmap/application/services"
	"soundmap/infrastructure/api"
	"soundmap/infrastructure/config"
	"soundmap/infrastructure/session"
)

// Container holds the client application's dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Hooks    *SessionHooks
	Store    *session.Store
	Client   *session.Client
	Account  *session.Account
	Explorer *services.Explorer
	Gateway  ports.SnapshotGateway
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideSessionHooks,
	ProvideSessionStore,
	ProvideSessionClient,
	ProvideAccount,
	ProvideResolver,
	wire.Bind(new(ports.Resolver), new(*api.Resolver)),
	wire.Bind(new(ports.PreviewFetcher), new(*api.Resolver)),
	ProvideGraphFetcher,
	ProvideSnapshotGateway,
	ProvideExplorer,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

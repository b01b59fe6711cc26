package di

import (
	"sync"

	"go.uber.org/zap"

	"soundmap/application/ports"
	"soundmap/application/services"
	"soundmap/infrastructure/api"
	"soundmap/infrastructure/config"
	"soundmap/infrastructure/session"
)

// SessionHooks lets the presentation layer react to session expiry without
// a construction-order cycle: the client is built with Notify, the handler
// is attached later.
type SessionHooks struct {
	mu sync.Mutex
	fn func()
}

// SetHandler installs the expiry handler.
func (h *SessionHooks) SetHandler(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

// Notify invokes the installed handler, if any.
func (h *SessionHooks) Notify() {
	h.mu.Lock()
	fn := h.fn
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideSessionHooks creates the session expiry hook holder
func ProvideSessionHooks() *SessionHooks {
	return &SessionHooks{}
}

// ProvideSessionStore creates the credential store
func ProvideSessionStore(cfg *config.Config) *session.Store {
	return session.NewStore(cfg.CredentialFile)
}

// ProvideSessionClient creates the authenticated HTTP client
func ProvideSessionClient(cfg *config.Config, store *session.Store, hooks *SessionHooks, logger *zap.Logger) *session.Client {
	return session.NewClient(store, cfg.APIBaseURL, cfg.RequestTimeout, hooks.Notify, logger)
}

// ProvideAccount creates the login/signup service
func ProvideAccount(cfg *config.Config, store *session.Store, client *session.Client, logger *zap.Logger) *session.Account {
	return session.NewAccount(store, cfg.APIBaseURL, client, logger)
}

// ProvideResolver creates the artist name resolver, which doubles as the
// preview-track fetcher
func ProvideResolver(cfg *config.Config, logger *zap.Logger) *api.Resolver {
	return api.NewResolver(cfg.APIBaseURL, cfg.RequestTimeout, logger)
}

// ProvideGraphFetcher creates the relation graph fetcher
func ProvideGraphFetcher(cfg *config.Config, logger *zap.Logger) ports.GraphFetcher {
	return api.NewGraphService(cfg.APIBaseURL, cfg.RequestTimeout, logger)
}

// ProvideSnapshotGateway creates the saved-network gateway
func ProvideSnapshotGateway(cfg *config.Config, client *session.Client, logger *zap.Logger) ports.SnapshotGateway {
	return api.NewSnapshotGateway(cfg.APIBaseURL, client, logger)
}

// ProvideExplorer creates the exploration controller
func ProvideExplorer(
	resolver ports.Resolver,
	graphs ports.GraphFetcher,
	previews ports.PreviewFetcher,
	snapshots ports.SnapshotGateway,
	cfg *config.Config,
	logger *zap.Logger,
) *services.Explorer {
	return services.NewExplorer(resolver, graphs, previews, snapshots, cfg.GraphDepth, logger)
}

package ports

import (
	"context"

	"github.com/bnema/agentgate/internal/domain"
)

type Connection struct {
	OK      bool
	Status  int
	Payload map[string]any
}

type ConnectStart struct {
	OK     bool
	Status int
	URL    string
}

// CredentialBroker is the managed token service that holds the end users'
// provider connections.
type CredentialBroker interface {
	Configured() bool
	GetConnection(ctx context.Context, provider domain.Provider, identity domain.Identity) (Connection, error)
	StartConnect(ctx context.Context, provider domain.Provider, identity domain.Identity) (ConnectStart, error)
}

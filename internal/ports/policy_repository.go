package ports

import (
	"context"

	"github.com/bnema/agentgate/internal/domain"
)

type PolicyRepository interface {
	Load(ctx context.Context) (domain.AuthorizationTable, error)
	Save(ctx context.Context, table domain.AuthorizationTable) error
}

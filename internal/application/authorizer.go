package application

import (
	"fmt"

	"github.com/bnema/agentgate/internal/domain"
)

type ScopeAuthorizer struct {
	table domain.AuthorizationTable
}

func NewScopeAuthorizer(table domain.AuthorizationTable) *ScopeAuthorizer {
	return &ScopeAuthorizer{table: table}
}

// IsAuthorized reports whether agent may perform action. Unknown agents and
// unknown actions are denied.
func (a *ScopeAuthorizer) IsAuthorized(agent, action string) bool {
	parsed, err := domain.ParseAction(action)
	if err != nil {
		return false
	}

	return a.table.IsAuthorized(domain.AgentID(agent), parsed)
}

func (a *ScopeAuthorizer) Authorize(agent, action string) error {
	if !a.IsAuthorized(agent, action) {
		return fmt.Errorf("%w: agent %q action %q", domain.ErrAuthorizationDenied, agent, action)
	}

	return nil
}

func (a *ScopeAuthorizer) Table() domain.AuthorizationTable {
	return a.table
}

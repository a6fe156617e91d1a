package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

// PolicySnapshot is the authorization table in effect together with where it
// came from.
type PolicySnapshot struct {
	Table    domain.AuthorizationTable
	Fallback bool
}

// PolicyService loads and edits the agents file. The gateway itself only
// ever sees the table loaded at startup.
type PolicyService struct {
	repo   ports.PolicyRepository
	logger *slog.Logger
}

func NewPolicyService(repo ports.PolicyRepository, logger *slog.Logger) *PolicyService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PolicyService{repo: repo, logger: logger}
}

// Load returns the stored table, or the built-in defaults when no agents
// file exists yet.
func (s *PolicyService) Load(ctx context.Context) (PolicySnapshot, error) {
	table, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrPolicyNotFound) {
		s.logger.WarnContext(ctx, "no agents file, using built-in authorization table")
		return PolicySnapshot{Table: domain.DefaultAuthorizationTable(), Fallback: true}, nil
	}
	if err != nil {
		return PolicySnapshot{}, fmt.Errorf("load agents: %w", err)
	}

	return PolicySnapshot{Table: table}, nil
}

func (s *PolicyService) Check(ctx context.Context, agent, action string) (bool, error) {
	snapshot, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	return NewScopeAuthorizer(snapshot.Table).IsAuthorized(strings.TrimSpace(agent), action), nil
}

// Grant adds action to agent and persists the result. Starting from the
// defaults materializes them into the agents file.
func (s *PolicyService) Grant(ctx context.Context, agent, action string) (domain.AuthorizationTable, error) {
	agent = strings.TrimSpace(agent)
	if agent == "" {
		return domain.AuthorizationTable{}, domain.NewValidationError("agent", "agent is required")
	}
	parsed, err := domain.ParseAction(action)
	if err != nil {
		return domain.AuthorizationTable{}, err
	}

	snapshot, err := s.Load(ctx)
	if err != nil {
		return domain.AuthorizationTable{}, err
	}

	table := snapshot.Table.WithGrant(domain.AgentID(agent), parsed)
	if err := s.repo.Save(ctx, table); err != nil {
		return domain.AuthorizationTable{}, fmt.Errorf("save agents: %w", err)
	}
	s.logger.InfoContext(ctx, "granted action", "agent", agent, "action", parsed)

	return table, nil
}

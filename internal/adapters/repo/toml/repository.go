package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	agentsPathKey    = "agents.path"
	agentsFileMode   = 0o600
	agentsDirMode    = 0o700
	agentsConfigDir  = ".agentgate"
	agentsConfigFile = "agents.toml"
	tempFilePattern  = ".agents-*.toml.tmp"
)

// Repository stores the authorization table in a versioned TOML file.
type Repository struct {
	agentsPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.PolicyRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if !cfg.IsSet(agentsPathKey) || strings.TrimSpace(cfg.GetString(agentsPathKey)) == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(agentsPathKey, filepath.Join(homeDir, agentsConfigDir, agentsConfigFile))
	}

	agentsPath := cfg.GetString(agentsPathKey)
	if agentsPath == "" {
		return nil, errors.New("agents path is empty")
	}
	agentsPath, err := normalizeAgentsPath(agentsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{agentsPath: agentsPath, mu: lockForPath(agentsPath)}, nil
}

func (r *Repository) Path() string {
	return r.agentsPath
}

// Load returns domain.ErrPolicyNotFound when the file does not exist, so the
// caller can decide on a fallback table.
func (r *Repository) Load(ctx context.Context) (domain.AuthorizationTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.AuthorizationTable{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return domain.AuthorizationTable{}, err
	}
	if !found {
		return domain.AuthorizationTable{}, fmt.Errorf("%w: %s", domain.ErrPolicyNotFound, r.agentsPath)
	}

	return fromSchema(file)
}

func (r *Repository) Save(ctx context.Context, table domain.AuthorizationTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(table))
}

func (r *Repository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.agentsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read agents file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode agents file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func normalizeAgentsPath(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, rest)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve agents path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.agentsPath), agentsDirMode); err != nil {
		return fmt.Errorf("create agents directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode agents file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.agentsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp agents file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp agents file: %w", err)
	}

	if err := tempFile.Chmod(agentsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp agents file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp agents file: %w", err)
	}

	if err := os.Rename(tempName, r.agentsPath); err != nil {
		return fmt.Errorf("replace agents file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.agentsPath, agentsFileMode); err != nil {
		return fmt.Errorf("chmod agents file: %w", err)
	}

	return nil
}

func toSchema(table domain.AuthorizationTable) fileSchema {
	grants := table.Grants()
	file := fileSchema{Version: currentSchemaVersion, Agents: make([]agentSchema, 0, len(grants))}
	for _, grant := range grants {
		actions := make([]string, 0, len(grant.Actions))
		for _, action := range grant.Actions {
			actions = append(actions, string(action))
		}
		file.Agents = append(file.Agents, agentSchema{ID: string(grant.Agent), Actions: actions})
	}

	return file
}

// fromSchema rejects unknown actions instead of dropping them so a typo in
// the file cannot silently narrow an agent's grants.
func fromSchema(file fileSchema) (domain.AuthorizationTable, error) {
	grants := make(map[domain.AgentID][]domain.Action, len(file.Agents))
	for _, entry := range file.Agents {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return domain.AuthorizationTable{}, errors.New("decode agents file: agent with empty id")
		}
		for _, raw := range entry.Actions {
			action, err := domain.ParseAction(raw)
			if err != nil {
				return domain.AuthorizationTable{}, fmt.Errorf("decode agents file: agent %q: %w", id, err)
			}
			grants[domain.AgentID(id)] = append(grants[domain.AgentID(id)], action)
		}
		if _, ok := grants[domain.AgentID(id)]; !ok {
			grants[domain.AgentID(id)] = nil
		}
	}

	return domain.NewAuthorizationTable(grants), nil
}

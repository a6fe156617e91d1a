package file

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
)

const (
	storeDirMode = 0o700
	tokenFileMod = 0o600
)

// Store keeps one override token per provider as a file under root.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, provider domain.Provider, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(provider)
	if err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is empty", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(token+"\n"), tokenFileMod); err != nil {
		return fmt.Errorf("write %s token: %w", provider, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, provider domain.Provider) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathFor(provider)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: no %s token file", domain.ErrTokenNotFound, provider)
		}
		return "", fmt.Errorf("read %s token: %w", provider, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s token file is empty", domain.ErrTokenNotFound, provider)
	}

	return token, nil
}

func (s *Store) Delete(ctx context.Context, provider domain.Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(provider)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s token: %w", provider, err)
	}

	return nil
}

// pathFor only accepts known providers, so a key can never escape root.
func (s *Store) pathFor(provider domain.Provider) (string, error) {
	parsed, err := domain.ParseProvider(string(provider))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s.root) == "" || s.root == "." {
		return "", errors.New("token directory is not configured")
	}

	return filepath.Join(s.root, string(parsed)), nil
}

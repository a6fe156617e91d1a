package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const (
	DefaultPrefix = "agentgate/tokens"
	// DefaultLookupTimeout bounds a single pass show. gpg waiting on a
	// pinentry that can never appear would otherwise hold the request.
	DefaultLookupTimeout = 3 * time.Second
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps override tokens in the user's pass(1) password store under
// <prefix>/<provider>.
type Store struct {
	prefix        string
	lookupTimeout time.Duration
	run           runFunc
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Store{prefix: prefix, lookupTimeout: DefaultLookupTimeout, run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, provider domain.Provider, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.keyFor(provider)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, strings.TrimSpace(token)+"\n", "insert", "-m", "-f", key)
	if err != nil {
		return formatError("put", key, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, provider domain.Provider) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := s.keyFor(provider)
	if err != nil {
		return "", err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	stdout, stderr, err := s.run(lookupCtx, "", "show", key)
	if err != nil {
		if ctx.Err() == nil && errors.Is(lookupCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: pass show %q timed out after %s", ErrUnavailable, key, s.lookupTimeout)
		}
		if strings.Contains(stderr, "is not in the password store") {
			return "", fmt.Errorf("%w: pass entry %q", domain.ErrTokenNotFound, key)
		}
		return "", formatError("get", key, err, stderr)
	}

	// Only the first line is the token; pass entries may carry notes below.
	token, _, _ := strings.Cut(stdout, "\n")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: pass entry %q is empty", domain.ErrTokenNotFound, key)
	}

	return token, nil
}

func (s *Store) Delete(ctx context.Context, provider domain.Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := s.keyFor(provider)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", key)
	if err != nil {
		return formatError("delete", key, err, stderr)
	}

	return nil
}

func (s *Store) keyFor(provider domain.Provider) (string, error) {
	parsed, err := domain.ParseProvider(string(provider))
	if err != nil {
		return "", err
	}

	return s.prefix + "/" + string(parsed), nil
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	// gpg-agent children can keep the output pipes open after pass is killed.
	cmd.WaitDelay = time.Second
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}

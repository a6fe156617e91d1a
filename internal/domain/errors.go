package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorizationDenied   = errors.New("unauthorized agent or action")
	ErrReplayRejected        = errors.New("invalid or replayed request")
	ErrCredentialUnavailable = errors.New("no credential available")
	ErrValidation            = errors.New("invalid request")
	ErrUpstreamFailure       = errors.New("upstream failure")
	ErrTokenNotFound         = errors.New("override token not found")
	ErrPolicyNotFound        = errors.New("agent policy not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError reports a failed summarizer or provider call. Payload holds
// whatever the upstream returned, if anything.
type UpstreamError struct {
	Source  string
	Status  int
	Payload any
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("%s failed with status %d: %v", e.Source, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Source, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s failed with status %d", e.Source, e.Status)
	default:
		return e.Source + " failed"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

// CredentialError names the provider a token could not be found for.
type CredentialError struct {
	Provider Provider
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("No %s token available (configure the broker outbound app or DEMO_BEARER_TOKEN_%s)",
		e.Provider.DisplayName(), demoTokenSuffix(e.Provider))
}

func (e *CredentialError) Is(target error) bool {
	return target == ErrCredentialUnavailable
}

func demoTokenSuffix(p Provider) string {
	switch p {
	case ProviderSlack:
		return "SLACK"
	case ProviderNotion:
		return "NOTION"
	case ProviderGitHub:
		return "GITHUB"
	case ProviderGCal:
		return "GCAL"
	default:
		return "<PROVIDER>"
	}
}

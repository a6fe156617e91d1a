package domain

import (
	"fmt"
	"strings"
)

type Provider string

const (
	ProviderSlack  Provider = "slack"
	ProviderNotion Provider = "notion"
	ProviderGitHub Provider = "github"
	ProviderGCal   Provider = "gcal"
)

var providerAliases = map[string]Provider{
	"slack":           ProviderSlack,
	"notion":          ProviderNotion,
	"github":          ProviderGitHub,
	"gcal":            ProviderGCal,
	"google-calendar": ProviderGCal,
}

func Providers() []Provider {
	return []Provider{ProviderSlack, ProviderNotion, ProviderGitHub, ProviderGCal}
}

func ParseProvider(raw string) (Provider, error) {
	provider, ok := providerAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: unknown provider %q", ErrValidation, raw)
	}

	return provider, nil
}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderSlack:
		return "Slack"
	case ProviderNotion:
		return "Notion"
	case ProviderGitHub:
		return "GitHub"
	case ProviderGCal:
		return "Google Calendar"
	default:
		return string(p)
	}
}

const DefaultUserID = "demo"

// Identity names the end user whose provider connection is used.
type Identity struct {
	UserID   string
	TenantID string
}

func NewIdentity(userID, tenantID string) Identity {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = DefaultUserID
	}

	return Identity{UserID: userID, TenantID: strings.TrimSpace(tenantID)}
}

// ProviderResult is the normalized outcome of one provider call. Payload is
// the provider's response body, passed through for diagnosis.
type ProviderResult struct {
	OK      bool `json:"ok"`
	Status  int  `json:"status"`
	Payload any  `json:"resp"`
}

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bnema/agentgate/internal/domain"
)

const (
	CodeUnauthorized          = "unauthorized"
	CodeReplayed              = "replayed"
	CodeCredentialUnavailable = "credential_unavailable"
	CodeBadRequest            = "bad_request"
	CodeUpstreamFailure       = "upstream_failure"
)

type errorBody struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Status int    `json:"status,omitempty"`
	Resp   any    `json:"resp,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the only place errors become HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var validation *domain.ValidationError
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return http.StatusForbidden, errorBody{Error: "Unauthorized agent or action", Code: CodeUnauthorized}
	case errors.Is(err, domain.ErrReplayRejected):
		return http.StatusUnauthorized, errorBody{Error: "Invalid or replayed request", Code: CodeReplayed}
	case errors.Is(err, domain.ErrCredentialUnavailable):
		return http.StatusUnauthorized, errorBody{Error: credentialMessage(err), Code: CodeCredentialUnavailable}
	case errors.As(err, &validation):
		return http.StatusBadRequest, errorBody{Error: validation.Message, Code: CodeBadRequest}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorBody{Error: err.Error(), Code: CodeBadRequest}
	case errors.As(err, &upstream):
		return http.StatusBadGateway, errorBody{
			Error:  upstream.Error(),
			Code:   CodeUpstreamFailure,
			Status: upstream.Status,
			Resp:   upstream.Payload,
		}
	default:
		return http.StatusBadGateway, errorBody{Error: err.Error(), Code: CodeUpstreamFailure}
	}
}

func credentialMessage(err error) string {
	var credential *domain.CredentialError
	if errors.As(err, &credential) {
		return credential.Error()
	}
	return domain.ErrCredentialUnavailable.Error()
}

func writeResult(w http.ResponseWriter, result domain.ProviderResult) {
	status := http.StatusOK
	if !result.OK {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, result)
}

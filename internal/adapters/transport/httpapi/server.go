package httpapi

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bnema/agentgate/internal/application"
	"github.com/bnema/agentgate/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"

	MaxBodyBytes = 1 << 20
)

//go:embed static/index.html
var indexPage []byte

type Handler struct {
	gateway *application.Gateway
	logger  *slog.Logger
}

// NewHandler mounts every gateway route on a chi router.
func NewHandler(gateway *application.Gateway, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{gateway: gateway, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(limitBody(MaxBodyBytes))

	r.Get("/health", h.health)
	r.Get("/", h.index)
	r.Post("/trigger-summary", h.triggerSummary)
	r.Post("/slack/post", h.slackPost)
	r.Post("/notion/update", h.notionUpdate)
	r.Post("/github/issue", h.githubIssue)
	r.Post("/gcal/event", h.gcalEvent)

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.gateway.Health())
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (h *Handler) triggerSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	summary, err := h.gateway.TriggerSummary(r.Context(), req.command(replayClaim(r)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) slackPost(w http.ResponseWriter, r *http.Request) {
	var req slackRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.gateway.PostMessage(r.Context(), req.command(replayClaim(r)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeResult(w, result)
}

func (h *Handler) notionUpdate(w http.ResponseWriter, r *http.Request) {
	var req notionRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.gateway.AppendNote(r.Context(), req.command(replayClaim(r)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeResult(w, result)
}

func (h *Handler) githubIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.gateway.CreateIssue(r.Context(), req.command(replayClaim(r)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeResult(w, result)
}

type conflictBody struct {
	OK        bool              `json:"ok"`
	Conflict  bool              `json:"conflict"`
	Message   string            `json:"message"`
	Conflicts []domain.Conflict `json:"conflicts"`
}

func (h *Handler) gcalEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	outcome, err := h.gateway.CreateEvent(r.Context(), req.command(replayClaim(r)))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if outcome.Conflict {
		writeJSON(w, http.StatusOK, conflictBody{
			Conflict:  true,
			Message:   application.ConflictMessage,
			Conflicts: outcome.Conflicts,
		})
		return
	}

	writeResult(w, outcome.Result)
}

// decode reads the JSON body. An empty or malformed body decodes to the zero
// request so the gate still answers with its own errors; only an oversized
// body is refused here.
func (h *Handler) decode(r *http.Request, target any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.NewValidationError("body", "Request body too large.")
		}
		return domain.NewValidationError("body", "Could not read request body.")
	}
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		h.logger.DebugContext(r.Context(), "ignoring malformed request body", "path", r.URL.Path, "error", err)
	}

	return nil
}

func replayClaim(r *http.Request) application.ReplayClaim {
	return application.ReplayClaim{
		Timestamp: r.Header.Get(HeaderTimestamp),
		Nonce:     r.Header.Get(HeaderNonce),
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ternarybob/hunter/internal/agent"
	"github.com/ternarybob/hunter/internal/store"
)

// version is set via -ldflags at build time
var version = "dev"

// SetVersion sets the version string (called from main).
func SetVersion(v string) {
	version = v
}

// Response types

// HealthResponse is the response for /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionResponse is the response for /version.
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse summarizes the running agent.
type StatusResponse struct {
	Uptime          string        `json:"uptime"`
	PollInterval    string        `json:"poll_interval"`
	IntentThreshold int           `json:"intent_threshold"`
	NotifySender    string        `json:"notify_sender"`
	NotifyChannel   string        `json:"notify_channel"`
	KnowledgeDocs   int           `json:"knowledge_docs"`
	Metrics         agent.Metrics `json:"metrics"`
}

// AccountsResponse wraps the account listing.
type AccountsResponse struct {
	Accounts   []store.Account `json:"accounts"`
	Total      int             `json:"total"`
	HighIntent int             `json:"high_intent"`
	Processed  int             `json:"processed"`
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: version,
		Service: "hunter-agent",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Uptime:          time.Since(s.started).Round(time.Second).String(),
		PollInterval:    (time.Duration(s.cfg.Agent.PollIntervalSeconds) * time.Second).String(),
		IntentThreshold: s.cfg.Agent.IntentThreshold,
		NotifySender:    s.notifier.SenderName(),
		NotifyChannel:   s.cfg.Notify.Channel,
		KnowledgeDocs:   s.analyzer.KnowledgeSize(),
		Metrics:         s.poller.Metrics(),
	})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.store.LoadAll()

	resp := AccountsResponse{
		Accounts: accounts,
		Total:    len(accounts),
	}
	for _, a := range accounts {
		if a.Processed {
			resp.Processed++
		}
		if a.IntentScore >= s.cfg.Agent.IntentThreshold && !a.Processed {
			resp.HighIntent++
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	acct, ok := s.store.GetByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "account not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, acct)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

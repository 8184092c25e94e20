// Package health runs a small status endpoint for deployments that
// have no other HTTP surface (the Discord bot, the sync worker).
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type status struct {
	Status    string `json:"status"`
	LocalPipe bool   `json:"local_pipeline"`
	AIPipe    bool   `json:"ai_pipeline"`
}

type Server struct {
	httpServer *http.Server
	status     status
}

// New builds the server. hasLocal and hasAI report which romanization
// backends the process was configured with.
func New(port int, hasLocal, hasAI bool) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		status: status{Status: "ok", LocalPipe: hasLocal, AIPipe: hasAI},
	}
	mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.status)
}

func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Package server exposes a segmenter over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/teatak/mmseg/config"
	"github.com/teatak/mmseg/segmenter"
	"github.com/teatak/mmseg/util"
)

// LoaderFunc produces a fresh segmenter, used at startup and on reload.
type LoaderFunc func(ctx context.Context) (*segmenter.Segmenter, error)

// SegRequest is the body of POST /segment.
type SegRequest struct {
	Text string `json:"text"`
}

// SegResponse is returned by POST /segment.
type SegResponse struct {
	Tokens    []string `json:"tokens"`
	Segmented string   `json:"segmented"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server holds the current segmenter and swaps it on reload.
type Server struct {
	load    LoaderFunc
	cfg     config.ServerConfig
	log     *logrus.Entry
	results *lru.Cache[string, []string]

	mu  sync.RWMutex
	seg *segmenter.Segmenter
}

// New creates a server and performs the initial load.
func New(ctx context.Context, load LoaderFunc, cfg config.ServerConfig) (*Server, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 1024
	}
	results, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}

	s := &Server{
		load:    load,
		cfg:     cfg,
		log:     util.Logger().WithField("component", "server"),
		results: results,
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the segmenter and drops cached results.
func (s *Server) Reload(ctx context.Context) error {
	s.log.Info("reloading segmenter")
	seg, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	s.mu.Lock()
	s.seg = seg
	s.results.Purge()
	s.mu.Unlock()

	s.log.Info("segmenter reloaded")
	return nil
}

// Cut segments text with the current segmenter, consulting the result cache.
func (s *Server) Cut(text string) ([]string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, ok := s.results.Get(text)
	if !ok {
		tokens = s.seg.Cut(text)
		s.results.Add(text, tokens)
	}
	return tokens, segmenter.Join(tokens, s.seg.Separator)
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/segment", s.handleSegment)
	mux.HandleFunc("/reload", s.handleReload)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

// HTTPServer builds an http.Server with the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	var req SegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tokens, segmented := s.Cut(req.Text)
	writeJSON(w, http.StatusOK, SegResponse{Tokens: tokens, Segmented: segmented})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		s.log.WithError(err).Error("reload failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.Logger().WithError(err).Warn("failed to write response")
	}
}

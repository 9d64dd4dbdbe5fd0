// Package server serves the landing page and the question API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/kompaksatyabuana/kompak/internal/questions"
)

//go:embed static
var staticFiles embed.FS

// Config wires dependencies for the HTTP handler.
type Config struct {
	Bank   *questions.Bank
	Logger hclog.Logger
}

// NewHandler builds the HTTP handler for the landing page and the API.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Bank == nil {
		return nil, errors.New("server: bank is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	index, err := fs.ReadFile(assets, "index.html")
	if err != nil {
		return nil, err
	}

	h := &handler{
		body:   cfg.Bank.JSON(),
		index:  index,
		assets: http.FileServerFS(assets),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(questions.APIPath, h.handleQuestions)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/static/", http.StripPrefix("/static", h.assets))
	mux.HandleFunc("/", h.handleIndex)

	return withRequestLogging(cfg.Logger, mux), nil
}

type handler struct {
	body   []byte
	index  []byte
	assets http.Handler
}

func (h *handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.body)
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !readOnly(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.index)
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readOnly rejects anything but GET and HEAD with 405.
func readOnly(w http.ResponseWriter, r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return true
	default:
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout. ready, if non-nil, receives the bound
// address once the listener is open.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger hclog.Logger, ready chan<- net.Addr) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("listening", "addr", ln.Addr().String())
	if ready != nil {
		ready <- ln.Addr()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

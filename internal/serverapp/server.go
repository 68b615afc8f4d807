// Package serverapp wires the task engine into an http.Handler.
package serverapp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"weekboard/internal/board"
	"weekboard/internal/config"
	"weekboard/internal/httpmw"
	"weekboard/internal/kv"
	"weekboard/internal/task"
)

type Options struct {
	Config *config.Config
	Clock  task.Clock
	Logger *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Clock == nil {
		opts.Clock = task.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	blobs, err := openBlobStore(opts.Config)
	if err != nil {
		return nil, err
	}

	store := task.NewStore(blobs, opts.Clock, opts.Logger)
	router := board.NewRouter(store, opts.Clock, opts.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"service": "weekboard",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	task.NewHandler(store).Register(mux)
	board.NewHandler(router).Register(mux)
	newViewsHandler(store, opts.Clock, opts.Config.WeekStartDay()).Register(mux)

	handler := httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	)
	return handler, nil
}

func openBlobStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendDir, "":
		return kv.NewDir(cfg.DataDir)
	case config.BackendSQLite:
		path := cfg.Storage.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "weekboard.db")
		}
		return kv.OpenSQLite(path)
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"catalyst/internal/engine"
	"catalyst/internal/infra"
	"catalyst/internal/storage"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Engine  *engine.Engine
	Config  *infra.Config
	Logger  infra.Logger
	Archive *storage.FileStore
}

// NewApp wires the handler container. Archive may be nil when upload
// archiving is not configured.
func NewApp(eng *engine.Engine, cfg *infra.Config, logger infra.Logger, archive *storage.FileStore) *App {
	return &App{Engine: eng, Config: cfg, Logger: logger, Archive: archive}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"error": message})
}

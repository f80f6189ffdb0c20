package config

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Settings is the subset of the config that is safe to show to API clients.
type Settings struct {
	SourceEncoding    string `json:"source_encoding"`
	DetectEncoding    bool   `json:"detect_encoding"`
	HeadingMaxMatches int    `json:"heading_max_matches"`
	CategoryMaxHops   int    `json:"category_max_hops"`
	IncludePrologues  bool   `json:"include_prologues"`
	WorkerProcesses   int    `json:"worker_processes"`
}

func (cfg *Config) Settings() *Settings {
	return &Settings{
		SourceEncoding:    cfg.SourceEncoding,
		DetectEncoding:    cfg.DetectEncoding,
		HeadingMaxMatches: cfg.HeadingMaxMatches,
		CategoryMaxHops:   cfg.CategoryMaxHops,
		IncludePrologues:  cfg.IncludePrologues,
		WorkerProcesses:   cfg.WorkerProcesses,
	}
}

type handler struct {
	config *Config
}

func (h *handler) retrieve(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, h.config.Settings()))
}

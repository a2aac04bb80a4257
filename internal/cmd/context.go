package cmd

import (
	"context"
	"net/http"

	"github.com/commercehq/shopctl/internal/api"
	"github.com/commercehq/shopctl/internal/cache"
	"github.com/commercehq/shopctl/internal/config"
	"github.com/commercehq/shopctl/internal/log"
	"github.com/commercehq/shopctl/internal/notify"
	"github.com/commercehq/shopctl/internal/session"
)

// app bundles the wired services a command needs
type app struct {
	cfg     config.Config
	logger  *log.Logger
	session *session.Manager
	client  *api.Client
	cache   *cache.Store
	notify  *notify.Center
}

// newApp loads configuration and wires the service graph:
// config -> logger -> token store -> session -> API client -> cache.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logCfg.Format = log.ParseFormat(cfg.LogFormat)
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	store := session.NewTokenStore(cfg.TokenPath())
	manager := session.NewManager(store, logger)

	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.APIBaseURL(),
		Tokens:     manager,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	manager.SetClient(client)

	return &app{
		cfg:     cfg,
		logger:  logger,
		session: manager,
		client:  client,
		cache:   cache.NewStore(logger),
		notify:  notify.NewCenter(),
	}, nil
}

// bootstrap resolves the persisted session before a command runs
func (a *app) bootstrap(ctx context.Context) error {
	return a.session.Bootstrap(ctx)
}

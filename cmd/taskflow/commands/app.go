// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskflow-project/taskflow/cmd/taskflow/cli"
	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/config"
	"github.com/taskflow-project/taskflow/lib/service"
	"github.com/taskflow-project/taskflow/lib/token"
)

// app is the shared wiring for every command: configuration, the
// persisted token, the API client, and the services on top of it.
type app struct {
	config     *config.Config
	tokens     *token.Store
	client     *api.Client
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	logger     *slog.Logger
}

// newApp loads configuration and builds the service stack. Fails only
// on invalid configuration; no network traffic happens here.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := cli.NewCommandLogger()
	tokens := token.NewStore(token.DefaultPath())

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout()},
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		config:     cfg,
		tokens:     tokens,
		client:     client,
		auth:       service.NewAuthService(client, tokens),
		tasks:      service.NewTaskService(client),
		categories: service.NewCategoryService(client),
		logger:     logger,
	}, nil
}

// requestContext returns a context bounded by the configured request
// timeout.
func (a *app) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.config.RequestTimeout())
}

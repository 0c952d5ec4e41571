// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package main contains monitor main function to start the monitor service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	vptlog "github.com/sy-cmd/vault-pki-toolkit/logger"
	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	httpapi "github.com/sy-cmd/vault-pki-toolkit/monitor/api"
	"github.com/sy-cmd/vault-pki-toolkit/monitor/middleware"
	jaegerclient "github.com/sy-cmd/vault-pki-toolkit/pkg/jaeger"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/prometheus"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/server"
	httpserver "github.com/sy-cmd/vault-pki-toolkit/pkg/server/http"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/uuid"
	pki "github.com/sy-cmd/vault-pki-toolkit/pki/openbao"
)

const (
	svcName        = "monitor"
	envPrefixHTTP  = "VPT_MONITOR_HTTP_"
	defSvcHTTPPort = "9019"
)

type config struct {
	LogLevel      string        `env:"VPT_MONITOR_LOG_LEVEL"      envDefault:"info"`
	InventoryPath string        `env:"VPT_MONITOR_INVENTORY"      envDefault:"inventory.yaml"`
	ScanInterval  time.Duration `env:"VPT_MONITOR_SCAN_INTERVAL"  envDefault:"1h"`
	Workers       int           `env:"VPT_MONITOR_WORKERS"        envDefault:"4"`
	DefaultTTL    string        `env:"VPT_MONITOR_DEFAULT_TTL"    envDefault:"720h"`
	IssueTimeout  time.Duration `env:"VPT_MONITOR_ISSUE_TIMEOUT"  envDefault:"30s"`
	JaegerURL     url.URL       `env:"VPT_JAEGER_URL"             envDefault:"http://localhost:4318/v1/traces"`
	InstanceID    string        `env:"VPT_MONITOR_INSTANCE_ID"    envDefault:""`
	TraceRatio    float64       `env:"VPT_JAEGER_TRACE_RATIO"     envDefault:"1.0"`

	// OpenBao PKI settings
	OpenBaoHost      string `env:"VPT_OPENBAO_HOST"         envDefault:"http://localhost:8200"`
	OpenBaoAppRole   string `env:"VPT_OPENBAO_APP_ROLE"     envDefault:""`
	OpenBaoAppSecret string `env:"VPT_OPENBAO_APP_SECRET"   envDefault:""`
	OpenBaoNamespace string `env:"VPT_OPENBAO_NAMESPACE"    envDefault:""`
	OpenBaoPKIPath   string `env:"VPT_OPENBAO_PKI_PATH"     envDefault:"pki"`
	OpenBaoRole      string `env:"VPT_OPENBAO_ROLE"         envDefault:"monitor"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	_ = godotenv.Load()

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := vptlog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err.Error())
	}

	var exitCode int
	defer vptlog.ExitWithError(&exitCode)

	if cfg.InstanceID == "" {
		if cfg.InstanceID, err = uuid.New().ID(); err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
	}

	invCfg, err := monitor.LoadConfig(cfg.InventoryPath)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load inventory: %s", err))
		exitCode = 1
		return
	}
	if err := invCfg.Validate(); err != nil {
		logger.Error(fmt.Sprintf("invalid inventory configuration: %s", err))
		exitCode = 1
		return
	}

	if cfg.OpenBaoHost == "" {
		logger.Error("No host specified for OpenBao PKI engine")
		exitCode = 1
		return
	}
	if cfg.OpenBaoAppRole == "" || cfg.OpenBaoAppSecret == "" {
		logger.Error("OpenBao AppRole credentials not specified")
		exitCode = 1
		return
	}

	agent, err := pki.NewAgent(cfg.OpenBaoAppRole, cfg.OpenBaoAppSecret, cfg.OpenBaoHost, cfg.OpenBaoNamespace, cfg.OpenBaoPKIPath, cfg.OpenBaoRole, logger)
	if err != nil {
		logger.Error("failed to configure client for OpenBao PKI engine")
		exitCode = 1
		return
	}

	tp, err := jaegerclient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to init Jaeger: %s", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("error shutting down tracer provider: %v", err))
		}
	}()
	tracer := tp.Tracer(svcName)

	scanner := monitor.NewScanner(invCfg, logger)
	registry := monitor.NewRegistry()
	coordinator := monitor.NewCoordinator(agent, monitor.CoordinatorConfig{
		RenewAt:      invCfg.RenewAtStatus(),
		DefaultRole:  cfg.OpenBaoRole,
		DefaultTTL:   cfg.DefaultTTL,
		IssueTimeout: cfg.IssueTimeout,
	}, logger)

	svc := monitor.New(scanner, coordinator, agent, registry, cfg.Workers, logger)
	svc = middleware.NewLogging(svc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = middleware.NewMetrics(svc, counter, latency)
	svc = middleware.NewTracing(svc, tracer)

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}

	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, httpapi.MakeHandler(svc, registry, logger, cfg.InstanceID), logger)
	sched := monitor.NewScheduler(ctx, cancel, svc, cfg.ScanInterval, logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return sched.Start()
	})

	g.Go(func() error {
		// The scheduler stops first so an in-flight cycle gets its grace
		// period before the HTTP server's deferred cancel fires.
		return server.StopSignalHandler(ctx, cancel, logger, svcName, sched, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("Monitor service terminated: %s", err))
	}
}

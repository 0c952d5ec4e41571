// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package api exposes the monitoring engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	toolkit "github.com/sy-cmd/vault-pki-toolkit"
	api "github.com/sy-cmd/vault-pki-toolkit/api/http"
	apiutil "github.com/sy-cmd/vault-pki-toolkit/api/http/util"
	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

const svcName = "monitor"

// MakeHandler returns a HTTP handler for API endpoints.
func MakeHandler(svc monitor.Service, registry *monitor.Registry, logger *slog.Logger, instanceID string) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	r := chi.NewRouter()

	r.Route("/certs", func(r chi.Router) {
		r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
			listCertsEndpoint(svc),
			decodeListCerts,
			api.EncodeResponse,
			opts...,
		), "list_certs").ServeHTTP)
		r.Get("/{certID}", otelhttp.NewHandler(kithttp.NewServer(
			viewCertEndpoint(svc),
			decodeViewCert,
			api.EncodeResponse,
			opts...,
		), "view_cert").ServeHTTP)
		r.Post("/{certID}/renew", otelhttp.NewHandler(kithttp.NewServer(
			renewCertEndpoint(svc),
			decodeRenewCert,
			api.EncodeResponse,
			opts...,
		), "renew_cert").ServeHTTP)
		r.Post("/{certID}/revoke", otelhttp.NewHandler(kithttp.NewServer(
			revokeCertEndpoint(svc),
			decodeRevokeCert,
			api.EncodeResponse,
			opts...,
		), "revoke_cert").ServeHTTP)
	})
	r.Get("/snapshot", otelhttp.NewHandler(kithttp.NewServer(
		viewSnapshotEndpoint(svc),
		decodeNothing,
		api.EncodeResponse,
		opts...,
	), "view_snapshot").ServeHTTP)
	r.Get("/renewals", otelhttp.NewHandler(kithttp.NewServer(
		listOutcomesEndpoint(svc),
		decodeNothing,
		api.EncodeResponse,
		opts...,
	), "list_renewals").ServeHTTP)

	r.Handle("/metrics", registry.Handler())
	r.Get("/health", toolkit.Health(svcName, instanceID))

	return r
}

func decodeListCerts(_ context.Context, r *http.Request) (any, error) {
	o, err := apiutil.ReadNumQuery[uint64](r, api.OffsetKey, api.DefOffset)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	l, err := apiutil.ReadNumQuery[uint64](r, api.LimitKey, api.DefLimit)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	status, err := apiutil.ReadStringQuery(r, api.StatusKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	role, err := apiutil.ReadStringQuery(r, api.RoleKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	req := listCertsReq{
		pm: monitor.PageMetadata{
			Offset: o,
			Limit:  l,
			Status: status,
			Role:   role,
		},
	}
	return req, nil
}

func decodeViewCert(_ context.Context, r *http.Request) (any, error) {
	req := viewCertReq{
		certID: chi.URLParam(r, "certID"),
	}

	return req, nil
}

func decodeRenewCert(_ context.Context, r *http.Request) (any, error) {
	req := renewCertReq{
		certID: chi.URLParam(r, "certID"),
	}

	return req, nil
}

func decodeRevokeCert(_ context.Context, r *http.Request) (any, error) {
	req := revokeCertReq{
		certID: chi.URLParam(r, "certID"),
	}

	return req, nil
}

func decodeNothing(_ context.Context, _ *http.Request) (any, error) {
	return nil, nil
}

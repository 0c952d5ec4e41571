// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

func listCertsEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(listCertsReq)
		if err := req.validate(); err != nil {
			return certPageRes{}, err
		}

		page, err := svc.ListCerts(ctx, req.pm)
		if err != nil {
			return certPageRes{}, err
		}

		return certPageRes{page}, nil
	}
}

func viewCertEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(viewCertReq)
		if err := req.validate(); err != nil {
			return certRes{}, err
		}

		entry, err := svc.ViewCert(ctx, req.certID)
		if err != nil {
			return certRes{}, err
		}

		return certRes{entry}, nil
	}
}

func viewSnapshotEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return snapshotRes{svc.ViewSnapshot(ctx)}, nil
	}
}

func renewCertEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(renewCertReq)
		if err := req.validate(); err != nil {
			return renewCertRes{}, err
		}

		outcome, err := svc.RenewCert(ctx, req.certID)
		if err != nil {
			return renewCertRes{}, err
		}

		return renewCertRes{outcome}, nil
	}
}

func revokeCertEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(revokeCertReq)
		if err := req.validate(); err != nil {
			return revokeCertRes{}, err
		}

		revokedAt, err := svc.RevokeCert(ctx, req.certID)
		if err != nil {
			return revokeCertRes{}, err
		}

		return revokeCertRes{RevokedAt: revokedAt}, nil
	}
}

func listOutcomesEndpoint(svc monitor.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return outcomesRes{Outcomes: svc.Outcomes(ctx)}, nil
	}
}

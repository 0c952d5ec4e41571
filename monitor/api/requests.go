// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package api

import (
	api "github.com/sy-cmd/vault-pki-toolkit/api/http"
	apiutil "github.com/sy-cmd/vault-pki-toolkit/api/http/util"
	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

type listCertsReq struct {
	pm monitor.PageMetadata
}

func (req listCertsReq) validate() error {
	if req.pm.Limit > api.MaxLimitSize {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrLimitSize)
	}

	return nil
}

type viewCertReq struct {
	certID string
}

func (req viewCertReq) validate() error {
	if req.certID == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingID)
	}

	return nil
}

type renewCertReq struct {
	certID string
}

func (req renewCertReq) validate() error {
	if req.certID == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingID)
	}

	return nil
}

type revokeCertReq struct {
	certID string
}

func (req revokeCertReq) validate() error {
	if req.certID == "" {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrMissingID)
	}

	return nil
}

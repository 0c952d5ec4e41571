// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package openbao wraps the OpenBao client for PKI operations.
package openbao

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/openbao/openbao/api/v2"

	"github.com/sy-cmd/vault-pki-toolkit/monitor"
	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

const (
	issue  = "issue"
	cert   = "cert"
	revoke = "revoke"
)

var (
	errFailedToLogin = errors.New("failed to login to OpenBao")
	errNoAuthInfo    = errors.New("no auth information from OpenBao")
	errRenewWatcher  = errors.New("unable to initialize new lifetime watcher for renewing auth token")
	errNoCertData    = errors.New("no certificate data returned from OpenBao")
	errNotFound      = errors.New("certificate not found")
)

type openbaoPKIAgent struct {
	appRole     string
	appSecret   string
	namespace   string
	path        string
	defaultRole string
	host        string
	client      *api.Client
	secret      *api.Secret
	logger      *slog.Logger
}

var _ monitor.Agent = (*openbaoPKIAgent)(nil)

// NewAgent instantiates an OpenBao PKI client. defaultRole is used when a
// caller issues without naming one.
func NewAgent(appRole, appSecret, host, namespace, path, defaultRole string, logger *slog.Logger) (monitor.Agent, error) {
	conf := api.DefaultConfig()
	conf.Address = host

	client, err := api.NewClient(conf)
	if err != nil {
		return nil, err
	}
	if namespace != "" {
		client.SetNamespace(namespace)
	}

	p := openbaoPKIAgent{
		appRole:     appRole,
		appSecret:   appSecret,
		host:        host,
		namespace:   namespace,
		defaultRole: defaultRole,
		path:        path,
		client:      client,
		logger:      logger,
	}
	return &p, nil
}

func (va *openbaoPKIAgent) Issue(ctx context.Context, role, commonName, ttl string, ipSANs []string) (monitor.Cert, error) {
	if err := va.loginAndRenew(ctx); err != nil {
		return monitor.Cert{}, err
	}

	if role == "" {
		role = va.defaultRole
	}

	secretValues := map[string]interface{}{
		"common_name":          commonName,
		"ttl":                  ttl,
		"exclude_cn_from_sans": true,
	}
	if len(ipSANs) > 0 {
		secretValues["ip_sans"] = ipSANs
	}

	secret, err := va.client.Logical().WriteWithContext(ctx, "/"+va.path+"/"+issue+"/"+role, secretValues)
	if err != nil {
		return monitor.Cert{}, err
	}
	if secret == nil || secret.Data == nil {
		return monitor.Cert{}, errNoCertData
	}

	c := monitor.Cert{
		CommonName: commonName,
	}

	if certData, ok := secret.Data["certificate"].(string); ok {
		c.Certificate = certData
	}
	if keyData, ok := secret.Data["private_key"].(string); ok {
		c.Key = keyData
	}
	if serialNumber, ok := secret.Data["serial_number"].(string); ok {
		c.SerialNumber = serialNumber
	}
	if caChain, ok := secret.Data["ca_chain"]; ok {
		var chain []string
		if err := mapstructure.Decode(caChain, &chain); err != nil {
			return monitor.Cert{}, fmt.Errorf("failed to decode ca_chain: %w", err)
		}
		c.CAChain = chain
	}
	if issuingCA, ok := secret.Data["issuing_ca"].(string); ok {
		c.IssuingCA = issuingCA
	}

	if expirationInterface, ok := secret.Data["expiration"]; ok {
		switch exp := expirationInterface.(type) {
		case int64:
			c.ExpiryTime = time.Unix(exp, 0)
		case float64:
			c.ExpiryTime = time.Unix(int64(exp), 0)
		case json.Number:
			if expInt, err := exp.Int64(); err == nil {
				c.ExpiryTime = time.Unix(expInt, 0)
			}
		}
	}

	return c, nil
}

func (va *openbaoPKIAgent) View(ctx context.Context, serialNumber string) (monitor.Cert, error) {
	if err := va.loginAndRenew(ctx); err != nil {
		return monitor.Cert{}, err
	}

	secret, err := va.client.Logical().ReadWithContext(ctx, "/"+va.path+"/"+cert+"/"+serialNumber)
	if err != nil {
		return monitor.Cert{}, err
	}
	if secret == nil || secret.Data == nil {
		return monitor.Cert{}, errNotFound
	}

	c := monitor.Cert{
		SerialNumber: serialNumber,
	}

	if certData, ok := secret.Data["certificate"].(string); ok {
		c.Certificate = certData
	}

	if c.Certificate != "" {
		if record, err := monitor.ParseRecord("", []byte(c.Certificate)); err == nil {
			c.CommonName = record.CommonName
			c.ExpiryTime = record.NotAfter
		}
	}

	return c, nil
}

func (va *openbaoPKIAgent) Revoke(ctx context.Context, serialNumber string) error {
	if err := va.loginAndRenew(ctx); err != nil {
		return err
	}

	secretValues := map[string]interface{}{
		"serial_number": serialNumber,
	}

	if _, err := va.client.Logical().WriteWithContext(ctx, "/"+va.path+"/"+revoke, secretValues); err != nil {
		return err
	}
	return nil
}

func (va *openbaoPKIAgent) HealthCheck(ctx context.Context) bool {
	health, err := va.client.Sys().HealthWithContext(ctx)
	if err != nil {
		va.logger.Warn("OpenBao health check failed", "error", err)
		return false
	}
	return health.Initialized && !health.Sealed
}

func (va *openbaoPKIAgent) loginAndRenew(ctx context.Context) error {
	if va.secret != nil && va.secret.Auth != nil && va.secret.Auth.ClientToken != "" {
		_, err := va.client.Auth().Token().LookupSelfWithContext(ctx)
		if err == nil {
			return nil
		}
	}

	authData := map[string]interface{}{
		"role_id":   va.appRole,
		"secret_id": va.appSecret,
	}

	authResp, err := va.client.Logical().WriteWithContext(ctx, "auth/approle/login", authData)
	if err != nil {
		return fmt.Errorf("%s: %w", errFailedToLogin, err)
	}

	if authResp == nil || authResp.Auth == nil {
		return errNoAuthInfo
	}

	va.secret = authResp
	va.client.SetToken(authResp.Auth.ClientToken)

	if authResp.Auth.Renewable {
		watcher, err := va.client.NewLifetimeWatcher(&api.LifetimeWatcherInput{
			Secret: authResp,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", errRenewWatcher, err)
		}

		go va.renewToken(watcher)
	}

	return nil
}

func (va *openbaoPKIAgent) renewToken(watcher *api.LifetimeWatcher) {
	defer watcher.Stop()

	watcher.Start()
	for {
		select {
		case err := <-watcher.DoneCh():
			if err != nil {
				va.logger.Error("token renewal failed", "error", err)
			}
			return
		case renewal := <-watcher.RenewCh():
			va.logger.Info("token renewed successfully", "lease_duration", renewal.Secret.LeaseDuration)
		}
	}
}

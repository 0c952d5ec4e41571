// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit"
	"github.com/sy-cmd/vault-pki-toolkit/monitor"
)

var (
	_ toolkit.Response = (*certPageRes)(nil)
	_ toolkit.Response = (*certRes)(nil)
	_ toolkit.Response = (*snapshotRes)(nil)
	_ toolkit.Response = (*renewCertRes)(nil)
	_ toolkit.Response = (*revokeCertRes)(nil)
	_ toolkit.Response = (*outcomesRes)(nil)
)

type certPageRes struct {
	monitor.CertPage
}

func (res certPageRes) Code() int {
	return http.StatusOK
}

func (res certPageRes) Headers() map[string]string {
	return map[string]string{}
}

func (res certPageRes) Empty() bool {
	return false
}

type certRes struct {
	monitor.Entry
}

func (res certRes) Code() int {
	return http.StatusOK
}

func (res certRes) Headers() map[string]string {
	return map[string]string{}
}

func (res certRes) Empty() bool {
	return false
}

type snapshotRes struct {
	monitor.Snapshot
}

func (res snapshotRes) Code() int {
	return http.StatusOK
}

func (res snapshotRes) Headers() map[string]string {
	return map[string]string{}
}

func (res snapshotRes) Empty() bool {
	return false
}

type renewCertRes struct {
	monitor.Outcome
}

func (res renewCertRes) Code() int {
	return http.StatusOK
}

func (res renewCertRes) Headers() map[string]string {
	return map[string]string{}
}

func (res renewCertRes) Empty() bool {
	return false
}

type revokeCertRes struct {
	RevokedAt time.Time `json:"revoked_at"`
}

func (res revokeCertRes) Code() int {
	return http.StatusOK
}

func (res revokeCertRes) Headers() map[string]string {
	return map[string]string{}
}

func (res revokeCertRes) Empty() bool {
	return false
}

type outcomesRes struct {
	Outcomes []monitor.Outcome `json:"outcomes"`
}

func (res outcomesRes) Code() int {
	return http.StatusOK
}

func (res outcomesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res outcomesRes) Empty() bool {
	return false
}

// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package monitor implements the certificate lifecycle engine: it scans a
// configured inventory of PEM artifacts, classifies each certificate by time
// to expiry, renews due certificates through the PKI issuing backend and
// publishes the resulting state as Prometheus metrics.
package monitor

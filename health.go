// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package toolkit

import (
	"encoding/json"
	"net/http"
)

const (
	contentType     = "Content-Type"
	contentTypeJSON = "application/health+json"
	svcStatus       = "pass"
	description     = " service"
)

// Version of the toolkit, set at build time.
var Version = "0.15.0"

// HealthInfo contains service health check details.
type HealthInfo struct {
	// Status contains service status.
	Status string `json:"status"`

	// Version contains current service version.
	Version string `json:"version"`

	// Description contains service description.
	Description string `json:"description"`

	// InstanceID contains the ID of the service instance.
	InstanceID string `json:"instance_id"`
}

// Health exposes an HTTP handler for retrieving service health.
func Health(service, instanceID string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		res := HealthInfo{
			Status:      svcStatus,
			Version:     Version,
			Description: service + description,
			InstanceID:  instanceID,
		}

		rw.Header().Set(contentType, contentTypeJSON)
		if err := json.NewEncoder(rw).Encode(res); err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
		}
	}
}

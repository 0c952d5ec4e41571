// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestLogJSONCmdRawOutput(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := cobra.Command{}
	cmd.SetOut(out)

	RawOutput = true
	defer func() { RawOutput = false }()

	logJSONCmd(cmd, map[string]string{"status": "healthy"})

	assert.Equal(t, "{\"status\":\"healthy\"}\n", out.String())
}

func TestLogJSONCmdPrettyOutput(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := cobra.Command{}
	cmd.SetOut(out)

	logJSONCmd(cmd, map[string]string{"status": "healthy"})

	assert.Contains(t, out.String(), "status")
	assert.Contains(t, out.String(), "healthy")
	assert.NotEqual(t, "{\"status\":\"healthy\"}\n", out.String())
}

// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package cli

import pkisdk "github.com/sy-cmd/vault-pki-toolkit/pkg/sdk"

// Keep SDK handle in global var.
var sdk pkisdk.SDK

// SetSDK sets the monitor SDK instance.
func SetSDK(s pkisdk.SDK) {
	sdk = s
}

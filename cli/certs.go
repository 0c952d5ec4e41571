// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	pkisdk "github.com/sy-cmd/vault-pki-toolkit/pkg/sdk"
)

var cmdCerts = []cobra.Command{
	{
		Use:   "get [all | <cert_id>]",
		Short: "Get certificates",
		Long:  `Gets a page of monitored certificates or one certificate by ID.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if args[0] == "all" {
				pm := pkisdk.PageMetadata{
					Offset: Offset,
					Limit:  Limit,
					Status: Status,
					Role:   Role,
				}
				page, err := sdk.Certs(cmd.Context(), pm)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}
				logJSONCmd(*cmd, page)
				return
			}

			cert, err := sdk.Cert(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, cert)
		},
	},
	{
		Use:   "snapshot",
		Short: "Get inventory snapshot",
		Long:  `Gets the latest full inventory snapshot including parse failures.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			snap, err := sdk.Snapshot(cmd.Context())
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, snap)
		},
	},
	{
		Use:   "renew <cert_id>",
		Short: "Renew certificate",
		Long:  `Renews a certificate through the issuing backend regardless of its status.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			outcome, err := sdk.RenewCert(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, outcome)
		},
	},
	{
		Use:   "revoke <cert_id>",
		Short: "Revoke certificate",
		Long:  `Revokes a certificate on the issuing backend by its ID.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			res, err := sdk.RevokeCert(cmd.Context(), args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, res)
		},
	},
	{
		Use:   "renewals",
		Short: "Get renewal history",
		Long:  `Gets the retained renewal outcome history.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			outcomes, err := sdk.Renewals(cmd.Context())
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, outcomes)
		},
	},
}

// NewCertsCmd returns certs command.
func NewCertsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "certs [get | snapshot | renew | revoke | renewals]",
		Short: "Certificates management",
		Long:  `Certificates management: view, renew and revoke monitored certificates.`,
	}

	for i := range cmdCerts {
		cmd.AddCommand(&cmdCerts[i])
	}

	return &cmd
}

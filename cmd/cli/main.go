// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

// Package main contains the entry point of the CLI for the monitor service.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sy-cmd/vault-pki-toolkit/cli"
	pkisdk "github.com/sy-cmd/vault-pki-toolkit/pkg/sdk"
)

const defURL = "http://localhost:9019"

func main() {
	msgContentType := string(pkisdk.CTJSON)

	sdkConf := pkisdk.Config{
		MonitorURL:     defURL,
		MsgContentType: pkisdk.ContentType(msgContentType),
	}

	rootCmd := &cobra.Command{
		Use: "vault-pki-cli",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			sdkConf.MsgContentType = pkisdk.ContentType(msgContentType)
			s := pkisdk.NewSDK(sdkConf)
			cli.SetSDK(s)
		},
	}

	certsCmd := cli.NewCertsCmd()
	healthCmd := cli.NewHealthCmd()

	rootCmd.AddCommand(certsCmd)
	rootCmd.AddCommand(healthCmd)

	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.MonitorURL,
		"monitor-url",
		"m",
		sdkConf.MonitorURL,
		"Monitor service URL",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.CurlFlag,
		"curl",
		"x",
		sdkConf.CurlFlag,
		"Convert HTTP request to cURL command",
	)

	rootCmd.PersistentFlags().Uint64VarP(
		&cli.Limit,
		"limit",
		"l",
		cli.Limit,
		"Limit query parameter",
	)

	rootCmd.PersistentFlags().Uint64VarP(
		&cli.Offset,
		"offset",
		"o",
		cli.Offset,
		"Offset query parameter",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.Status,
		"status",
		"s",
		cli.Status,
		"Status filter query parameter",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"R",
		cli.RawOutput,
		"Enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.Role,
		"role",
		"r",
		cli.Role,
		"Role filter query parameter",
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

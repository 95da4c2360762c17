/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

// Command teanalytics assembles tracked entity analytics statements from a
// JSON request document and optionally runs them against PostgreSQL.
package main

import (
	"context"
	"io"
	"os"

	"github.com/dhis2/te-analytics-go/internal/analytics"
	"github.com/dhis2/te-analytics-go/internal/analytics/persistence"
	"github.com/dhis2/te-analytics-go/internal/analytics/request"
	"github.com/dhis2/te-analytics-go/internal/common"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "teanalytics",
		Short:         "Tracked entity analytics query assembler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(sqlCmd(&configPath))
	rootCmd.AddCommand(runCmd(&configPath))
	return rootCmd
}

func sqlCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the assembled statement and its parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestPath, _ := cmd.Flags().GetString("request")
			return execute(cmd, *configPath, requestPath, func(ctx context.Context, cfg *common.Config, q *request.Query) (any, error) {
				return analytics.NewService(cfg.Query).Prepare(ctx, q)
			})
		},
	}
	cmd.Flags().String("request", "-", "Path to the request document, - for stdin")
	return cmd
}

func runCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the assembled statement and print the result grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestPath, _ := cmd.Flags().GetString("request")
			return execute(cmd, *configPath, requestPath, func(ctx context.Context, cfg *common.Config, q *request.Query) (any, error) {
				db, err := common.InitializeDatabase(cfg.Postgres)
				if err != nil {
					return nil, err
				}
				defer func() {
					_ = db.Close()
				}()
				runner := persistence.NewRunner(db, *zerolog.Ctx(ctx))
				return analytics.NewService(cfg.Query).Execute(ctx, runner, q)
			})
		},
	}
	cmd.Flags().String("request", "-", "Path to the request document, - for stdin")
	return cmd
}

type action func(ctx context.Context, cfg *common.Config, q *request.Query) (any, error)

// execute loads configuration and the request, runs fn and writes its result
// as JSON. Failures are written as an ErrorHandler document and returned.
func execute(cmd *cobra.Command, configPath, requestPath string, fn action) error {
	out := cmd.OutOrStdout()
	correlationID := uuid.NewString()

	cfg, err := common.LoadConfig(configPath)
	if err != nil {
		return writeError(out, err, correlationID)
	}
	logger := common.NewLogger(cfg.Log, cmd.ErrOrStderr()).With().Str("correlationId", correlationID).Logger()
	ctx := logger.WithContext(cmd.Context())
	common.PrintConfiguration(cfg, logger)

	in, closeIn, err := openRequest(cmd, requestPath)
	if err != nil {
		return writeError(out, err, correlationID)
	}
	defer closeIn()

	q, err := request.Decode(in, cfg.Query)
	if err != nil {
		return writeError(out, err, correlationID)
	}
	result, err := fn(ctx, cfg, q)
	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		return writeError(out, err, correlationID)
	}
	return writeJSON(out, result)
}

func openRequest(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, common.NewErrBadRequest("TECLI-REQUEST-OPEN Cannot open request document: " + err.Error())
	}
	return f, func() { _ = f.Close() }, nil
}

func writeJSON(out io.Writer, v any) error {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeError(out io.Writer, err error, correlationID string) error {
	_ = writeJSON(out, common.NewErrorHandlerFor(err, correlationID))
	return err
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gonodeflow/internal/config"
	"gonodeflow/internal/crash"
	applog "gonodeflow/internal/log"
	"gonodeflow/internal/version"
)

// cli holds the command tree and the state resolved before any command runs.
type cli struct {
	root  *cobra.Command
	cfg   config.AppConfig
	crash *crash.Context

	configPath string
	logLevel   string
}

func newCLI(cc *crash.Context) *cli {
	c := &cli{crash: cc, cfg: config.Defaults()}
	root := &cobra.Command{
		Use:           "gonodeflow",
		Short:         "Route node-graph connections and inspect their cached geometry",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: per-user config.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(c.newRouteCmd(), c.newHitTestCmd(), c.newVersionCmd())
	c.root = root
	return c
}

func (c *cli) execute(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// setup loads the configuration and initializes logging on the command's
// error stream.
func (c *cli) setup(cmd *cobra.Command) error {
	var (
		cfg config.AppConfig
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
		if err == nil {
			err = config.Validate(cfg)
		}
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	opts := cfg.LogOptions()
	if c.logLevel != "" {
		opts.Level = c.logLevel
	}
	opts.Writer = cmd.ErrOrStderr()
	applog.Init(opts)
	c.cfg = cfg
	return nil
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gonodeflow version %s\n", version.String())
		},
	}
}

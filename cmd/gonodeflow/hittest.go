/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	applog "gonodeflow/internal/log"
)

func colorHit() *color.Color  { return color.New(color.FgGreen, color.Bold) }
func colorMiss() *color.Color { return color.New(color.FgRed) }
func colorDim() *color.Color  { return color.New(color.FgHiBlack) }

type hitTestFlags struct {
	scene     sceneFlags
	at        string
	tolerance float64
	sel       string
}

func (c *cli) newHitTestCmd() *cobra.Command {
	var f hitTestFlags
	cmd := &cobra.Command{
		Use:   "hittest",
		Short: "Report whether a point hits the routed connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.hitTest(cmd, f)
		},
	}
	f.scene.bind(cmd)
	cmd.Flags().StringVar(&f.at, "at", "", "query point as x,y")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 0, "hit tolerance (default from theme)")
	cmd.Flags().StringVar(&f.sel, "select", "", "also list connections touching the rect x,y,w,h")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func (c *cli) hitTest(cmd *cobra.Command, f hitTestFlags) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "hittest")
	p, err := parsePoint("at", f.at)
	if err != nil {
		return err
	}
	g, cache, err := f.scene.build(c.cfg.CacheTheme())
	if err != nil {
		return err
	}
	c.crash.Graph = g

	out := cmd.OutOrStdout()
	id, hit := cache.HitTestAll(g, p, f.tolerance)
	l.Info("hit test", slog.String("at", fmtPt(p)), slog.Bool("hit", hit))
	if hit {
		_, _ = colorHit().Fprint(out, "HIT")
		_, _ = fmt.Fprintf(out, " %s at %s\n", id, fmtPt(p))
	} else {
		_, _ = colorMiss().Fprint(out, "MISS")
		_, _ = fmt.Fprintf(out, " at %s\n", fmtPt(p))
	}

	if f.sel != "" {
		q, err := parseRect("select", f.sel)
		if err != nil {
			return err
		}
		ids := cache.SelectInRect(g, q)
		if len(ids) == 0 {
			_, _ = colorDim().Fprintln(out, "selected none")
		} else {
			_, _ = fmt.Fprintf(out, "selected %s\n", strings.Join(ids, ","))
		}
	}
	l.Debug("cache", slog.String("stats", cache.Stats().String()))
	return nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package routing turns the endpoints of a connection into an ordered list of
// path segments. Every strategy is a pure function of its Context: identical
// input yields bit-identical output and no finite input makes it fail.
package routing

import (
	"fmt"

	"gonodeflow/internal/vector"
)

// Context describes one connection at the moment it is routed. Start and End
// are line-anchor points, already pulled back from the ports by gap and marker.
type Context struct {
	Start, End      vector.Pt
	SourceSide      vector.Side
	TargetSide      vector.Side
	Curvature       float64
	CornerRadius    float64
	ExtensionOffset float64
	BackEdgeGap     float64
	SourceBounds    *vector.Rect
	TargetBounds    *vector.Rect
}

// Strategy is one routing algorithm.
type Strategy interface {
	// Kind identifies the strategy.
	Kind() Kind
	// Route returns the path start point and its segments. The result always
	// contains at least one segment.
	Route(ctx Context) (vector.Pt, []vector.Segment)
}

// Kind enumerates the routing algorithms.
type Kind uint8

const (
	KindStraight Kind = iota
	KindCurved
	KindOrthogonal
)

func (k Kind) String() string {
	switch k {
	case KindStraight:
		return "straight"
	case KindCurved:
		return "curved"
	case KindOrthogonal:
		return "orthogonal"
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown routing style %q", b)
	}
	*k = v
	return nil
}

// ParseKind maps a style name to its Kind. "bezier" and "step" are accepted
// as aliases of curved and orthogonal.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "straight", "line":
		return KindStraight, true
	case "curved", "bezier":
		return KindCurved, true
	case "orthogonal", "step", "smoothstep":
		return KindOrthogonal, true
	}
	return KindCurved, false
}

// For returns the strategy implementing k.
func For(k Kind) Strategy {
	switch k {
	case KindStraight:
		return Straight{}
	case KindOrthogonal:
		return Orthogonal{}
	default:
		return Curved{}
	}
}

// Straight draws a single line between the endpoints.
type Straight struct{}

func (Straight) Kind() Kind { return KindStraight }

func (Straight) Route(ctx Context) (vector.Pt, []vector.Segment) {
	return ctx.Start, []vector.Segment{vector.Line(ctx.Start, ctx.End)}
}

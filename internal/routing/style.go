/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package routing

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"gonodeflow/internal/vector"
)

// Params are the numeric knobs a strategy reads from its Context.
type Params struct {
	Curvature       float64
	CornerRadius    float64
	ExtensionOffset float64
	BackEdgeGap     float64
}

// Style selects the routing strategy of a connection plus optional parameter
// overrides. Zero-valued overrides fall back to the theme defaults.
type Style struct {
	Kind            Kind
	Curvature       float64
	CornerRadius    float64
	ExtensionOffset float64
	BackEdgeGap     float64
}

// Resolve fills unset overrides from defaults.
func (s Style) Resolve(defaults Params) Params {
	p := defaults
	if s.Curvature > 0 {
		p.Curvature = s.Curvature
	}
	if s.CornerRadius > 0 {
		p.CornerRadius = s.CornerRadius
	}
	if s.ExtensionOffset > 0 {
		p.ExtensionOffset = s.ExtensionOffset
	}
	if s.BackEdgeGap > 0 {
		p.BackEdgeGap = s.BackEdgeGap
	}
	return p
}

// Identity hashes everything that shapes a routed path besides endpoint
// positions: the strategy kind, its resolved parameters and the marker sizes
// that decide how far lines are pulled back from their ports.
func Identity(k Kind, p Params, startMarker, endMarker vector.Size) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(k.String())
	_, _ = h.Write([]byte{0})
	for _, v := range []float64{
		p.Curvature, p.CornerRadius, p.ExtensionOffset, p.BackEdgeGap,
		startMarker.W, startMarker.H, endMarker.W, endMarker.H,
	} {
		writeFloat(h, v)
	}
	return h.Sum64()
}

func writeFloat(h *xxhash.Digest, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, _ = h.Write(buf[:])
}

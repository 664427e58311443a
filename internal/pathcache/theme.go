/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathcache

import (
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// Theme carries the defaults used when a connection does not override them.
type Theme struct {
	StartGap     float64
	EndGap       float64
	HitTolerance float64
	PortSize     vector.Size
	StartMarker  vector.Size
	EndMarker    vector.Size
	Routing      routing.Params
	DefaultStyle routing.Style
}

// DefaultTheme returns the built-in defaults.
func DefaultTheme() Theme {
	return Theme{
		StartGap:     0,
		EndGap:       4,
		HitTolerance: 6,
		PortSize:     vector.Size{W: 12, H: 12},
		StartMarker:  vector.Size{},
		EndMarker:    vector.Size{W: 10, H: 10},
		Routing: routing.Params{
			Curvature:       0.5,
			CornerRadius:    8,
			ExtensionOffset: 20,
			BackEdgeGap:     20,
		},
		DefaultStyle: routing.Style{Kind: routing.KindCurved},
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Endpoint geometry: where a connection line stops and where its marker
// (arrowhead) sits relative to the port it attaches to.
//
// Along the outward normal of the port side the layout is
//
//	port | gap | marker | line...
//
// so the marker fills the space between the truncated line end and the gap.

// MarkerExtent is the length of the marker measured along the side normal.
func MarkerExtent(side Side, marker Size) float64 {
	var e float64
	if side.Horizontal() {
		e = marker.W
	} else {
		e = marker.H
	}
	if e < 0 {
		return 0
	}
	return e
}

// CalculateEndpoint returns the marker center and the point the drawn line
// terminates at, for a port at portPos on side. A zero-size marker collapses
// both onto the same point, gap away from the port.
func CalculateEndpoint(portPos Pt, side Side, marker Size, gap float64) (endpointPos, linePos Pt) {
	if gap < 0 {
		gap = 0
	}
	n := side.Normal()
	ext := MarkerExtent(side, marker)
	linePos = portPos.Add(n.Scale(gap + ext))
	endpointPos = linePos.Sub(n.Scale(ext / 2))
	return endpointPos, linePos
}

// ArrowheadPath builds a closed triangle centered at endpointPos whose tip
// points into the port. The base lies on the line end, the tip on the gap.
// Zero-size markers produce an empty path.
func ArrowheadPath(endpointPos Pt, side Side, marker Size) Path {
	var path Path
	ext := MarkerExtent(side, marker)
	var across float64
	if side.Horizontal() {
		across = marker.H
	} else {
		across = marker.W
	}
	if ext <= 0 || across <= 0 {
		return path
	}
	n := side.Normal()
	px, py := -n.Y, n.X
	halfW := across / 2

	tip := endpointPos.Sub(n.Scale(ext / 2))
	bc := endpointPos.Add(n.Scale(ext / 2))
	bl := Pt{X: FloatRound(bc.X+px*halfW, 3), Y: FloatRound(bc.Y+py*halfW, 3)}
	br := Pt{X: FloatRound(bc.X-px*halfW, 3), Y: FloatRound(bc.Y-py*halfW, 3)}

	path.MoveTo(bl.X, bl.Y)
	path.LineTo(FloatRound(tip.X, 3), FloatRound(tip.Y, 3))
	path.LineTo(br.X, br.Y)
	path.Close()
	return path
}

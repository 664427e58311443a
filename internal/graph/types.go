/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package graph holds the node, port and connection values the geometry engine
// reads. They are plain snapshots owned by the host; the engine never mutates them.
package graph

import (
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// Port is a named attachment point on a node.
type Port struct {
	ID   string      `json:"id"`
	Side vector.Side `json:"side"`
	// Offset is the top-left corner of the port relative to the node position.
	Offset vector.Pt    `json:"offset"`
	Size   *vector.Size `json:"size,omitempty"` // nil uses the theme port size
}

// Node is a rectangular diagram element carrying ports.
type Node struct {
	ID       string      `json:"id"`
	Position vector.Pt   `json:"position"`
	Size     vector.Size `json:"size"`
	Hidden   bool        `json:"hidden,omitempty"`
	Ports    []Port      `json:"ports,omitempty"`
}

// Bounds returns the node rectangle in canvas coordinates.
func (n *Node) Bounds() vector.Rect {
	return vector.Rect{X: n.Position.X, Y: n.Position.Y, W: n.Size.W, H: n.Size.H}
}

// FindPort looks a port up by id.
func (n *Node) FindPort(id string) (Port, bool) {
	if n == nil {
		return Port{}, false
	}
	for _, p := range n.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// ConnectionPoint returns the physical location of a port: the midpoint of the
// port rectangle's outward edge, moved onto the node outline when shape is set.
// portSize is used for ports without their own size.
func (n *Node) ConnectionPoint(portID string, portSize vector.Size, shape NodeShape) (vector.Pt, bool) {
	p, ok := n.FindPort(portID)
	if !ok {
		return vector.Pt{}, false
	}
	sz := portSize
	if p.Size != nil {
		sz = *p.Size
	}
	o := n.Position.Add(p.Offset)
	var pt vector.Pt
	switch p.Side {
	case vector.SideLeft:
		pt = vector.Pt{X: o.X, Y: o.Y + sz.H/2}
	case vector.SideTop:
		pt = vector.Pt{X: o.X + sz.W/2, Y: o.Y}
	case vector.SideBottom:
		pt = vector.Pt{X: o.X + sz.W/2, Y: o.Y + sz.H}
	default:
		pt = vector.Pt{X: o.X + sz.W, Y: o.Y + sz.H/2}
	}
	if shape != nil {
		pt = shape.Project(n.Bounds(), pt, p.Side)
	}
	return pt, true
}

// Connection is a directed edge from a source port to a target port. Nil
// overrides fall back to the theme.
type Connection struct {
	ID           string         `json:"id"`
	SourceNodeID string         `json:"sourceNodeId"`
	SourcePortID string         `json:"sourcePortId"`
	TargetNodeID string         `json:"targetNodeId"`
	TargetPortID string         `json:"targetPortId"`
	StartGap     *float64       `json:"startGap,omitempty"`
	EndGap       *float64       `json:"endGap,omitempty"`
	StartMarker  *vector.Size   `json:"startMarker,omitempty"`
	EndMarker    *vector.Size   `json:"endMarker,omitempty"`
	Style        *routing.Style `json:"style,omitempty"`
	Hidden       bool           `json:"hidden,omitempty"`
}

// RoutingStyle returns the connection's own style or def when it has none.
func (c *Connection) RoutingStyle(def routing.Style) routing.Style {
	if c.Style != nil {
		return *c.Style
	}
	return def
}

// Graph is a flat snapshot of nodes and connections in paint order.
type Graph struct {
	Nodes       []*Node       `json:"nodes"`
	Connections []*Connection `json:"connections"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Endpoints resolves the source and target nodes of c. Either may be nil.
func (g *Graph) Endpoints(c *Connection) (src, tgt *Node) {
	return g.Node(c.SourceNodeID), g.Node(c.TargetNodeID)
}

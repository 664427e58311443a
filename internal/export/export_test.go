/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"gonodeflow/internal/graph"
	"gonodeflow/internal/pathcache"
	"gonodeflow/internal/routing"
	"gonodeflow/internal/vector"
)

// newScene wires a right port at (106,30) to a left port at (294,30) with a
// straight connection.
func newScene() Scene {
	straight := routing.Style{Kind: routing.KindStraight}
	g := &graph.Graph{
		Nodes: []*graph.Node{
			{
				ID:    "a",
				Size:  vector.Size{W: 100, H: 60},
				Ports: []graph.Port{{ID: "out", Side: vector.SideRight, Offset: vector.Pt{X: 94, Y: 24}}},
			},
			{
				ID:       "b",
				Position: vector.Pt{X: 300},
				Size:     vector.Size{W: 100, H: 60},
				Ports:    []graph.Port{{ID: "in", Side: vector.SideLeft, Offset: vector.Pt{X: -6, Y: 24}}},
			},
		},
		Connections: []*graph.Connection{
			{ID: "c1", SourceNodeID: "a", SourcePortID: "out", TargetNodeID: "b", TargetPortID: "in", Style: &straight},
		},
	}
	return Scene{Graph: g, Cache: pathcache.New(pathcache.DefaultTheme())}
}

func TestWriteSVGGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, newScene(), Options{Labels: true, HitRects: true}))

	g := goldie.New(t)
	g.Assert(t, "scene_straight", buf.Bytes())
}

func TestWriteSVGDrawOnly(t *testing.T) {
	s := newScene()
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s, Options{}))

	out := buf.String()
	assert.Contains(t, out, `d="M106 30 L280 30"`)
	assert.NotContains(t, out, "stroke-dasharray")
	assert.NotContains(t, out, "<text")

	e, ok := s.Cache.Entry("c1")
	require.True(t, ok)
	assert.False(t, e.HasHitTestData, "draw-only export must not build hit data")
	assert.Equal(t, uint64(1), s.Cache.Recomputations())
}

func TestDrawOnlyExportSurvivesConcurrentInvalidation(t *testing.T) {
	s := newScene()
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				s.Cache.InvalidateAll()
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		<-done
	})

	for i := 0; i < 200; i++ {
		var buf bytes.Buffer
		require.NoError(t, WriteSVG(&buf, s, Options{}))
		require.Contains(t, buf.String(), `d="M106 30 L280 30"`, "iteration %d", i)
	}
}

func TestWriteSVGScale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, newScene(), Options{Scale: 2, Margin: 10}))
	assert.Contains(t, buf.String(), `width="840px" height="160px" viewBox="-10 -10 420 80"`)
}

func TestSceneSkipsHiddenAndUnresolvable(t *testing.T) {
	s := newScene()
	s.Graph.Nodes = append(s.Graph.Nodes, &graph.Node{ID: "h", Position: vector.Pt{X: 1000}, Size: vector.Size{W: 10, H: 10}, Hidden: true})
	s.Graph.Connections = append(s.Graph.Connections,
		&graph.Connection{ID: "c2", SourceNodeID: "a", SourcePortID: "out", TargetNodeID: "missing", TargetPortID: "in"},
		&graph.Connection{ID: "c3", SourceNodeID: "a", SourcePortID: "out", TargetNodeID: "b", TargetPortID: "in", Hidden: true},
		nil,
	)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s, Options{}))
	out := buf.String()
	assert.NotContains(t, out, "node-h")
	assert.NotContains(t, out, "conn-c2")
	assert.NotContains(t, out, "conn-c3")
	assert.Contains(t, out, `viewBox="-20 -20 440 100"`)
}

func TestEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSVG(&buf, Scene{}, Options{})
	require.ErrorIs(t, err, ErrEmptyScene)

	hidden := Scene{Graph: &graph.Graph{Nodes: []*graph.Node{{ID: "x", Hidden: true}}}}
	require.ErrorIs(t, WritePNG(&buf, hidden, Options{}), ErrEmptyScene)
	require.ErrorIs(t, WritePDF(&buf, hidden, Options{}), ErrEmptyScene)
	assert.Zero(t, buf.Len())
}

func TestNilCacheUsesDefaults(t *testing.T) {
	s := newScene()
	s.Cache = nil
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s, Options{}))
	assert.Contains(t, buf.String(), `d="M106 30 L280 30"`)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	f, err = FormatFromPath("out/scene.pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("gif")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	var ze *zerr.Error
	require.ErrorAs(t, err, &ze)
	assert.Equal(t, "gif", ze.Metadata()["format"])

	err = Write(&bytes.Buffer{}, Format("bmp"), newScene(), Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, newScene(), Options{HitRects: true}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 440, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())

	white := color.RGBAModel.Convert(color.White)
	at := func(x, y int) color.Color { return color.RGBAModel.Convert(img.At(x, y)) }

	assert.Equal(t, white, at(220, 5), "margin stays background")
	assert.NotEqual(t, white, at(220, 50), "connection line is painted")
	assert.Equal(t, color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 255}, at(70, 50), "node fill")
	assert.Equal(t, color.RGBA{R: 255, A: 255}, at(150, 44), "hit rect border")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, newScene(), Options{Labels: true, HitRects: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "scene.svg")
	require.NoError(t, WriteFile(path, "", newScene(), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<?xml")))

	err = WriteFile(filepath.Join(dir, "scene.gif"), "", newScene(), Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "scene.gif"))
}

package kicker

import (
	"fmt"
	"image/color"

	"github.com/ByteArena/box2d"
	"github.com/fogleman/gg"
)

const (
	ViewportW float64 = 600
	ViewportH float64 = 300

	// Pixels per meter
	Scale float64 = 150.0

	// World x coordinate at the left edge of the viewport
	ViewportMinX float64 = -1.0
)

var (
	skyShade     = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	groundShade  = color.RGBA{R: 255, G: 166, B: 0, A: 255}
	torsoColour  = color.RGBA{R: 128, G: 102, B: 230, A: 255}
	legColour    = color.RGBA{R: 77, G: 77, B: 128, A: 255}
	ballColour   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	kickedColour = color.RGBA{R: 230, G: 76, B: 60, A: 255}
)

// WorldToPixelCoord converts world coordinates in meters to pixel
// coordinates in the rendered frame
func WorldToPixelCoord(coords [2]float64) [2]float64 {
	x, y := coords[0], coords[1]

	pixelX := Scale * (x - ViewportMinX)
	pixelY := ViewportH - Scale*y - ViewportH/10

	return [2]float64{pixelX, pixelY}
}

// Render draws the current state of the environment and saves it as a
// PNG image at path. The ball is drawn in red once the kick latch has
// closed.
func (k *Kicker) Render(path string) error {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(skyShade)
	dc.Clear()

	// Ground
	fix := k.ground.GetFixtureList()
	edge := fix.M_shape.(*box2d.B2EdgeShape)
	v1 := WorldToPixelCoord([2]float64{edge.M_vertex1.X, edge.M_vertex1.Y})
	v2 := WorldToPixelCoord([2]float64{edge.M_vertex2.X, edge.M_vertex2.Y})
	dc.DrawLine(v1[0], v1[1], v2[0], v2[1])
	dc.SetColor(groundShade)
	dc.SetLineWidth(3.0)
	dc.Stroke()

	drawPolygons(dc, k.torso, torsoColour)
	drawPolygons(dc, k.leg, legColour)

	// Ball
	ballPos := k.ball.GetPosition()
	centre := WorldToPixelCoord([2]float64{ballPos.X, ballPos.Y})
	dc.ClearPath()
	dc.DrawCircle(centre[0], centre[1], BallRadius*Scale)
	if k.episode.Kicked() {
		dc.SetColor(kickedColour)
	} else {
		dc.SetColor(ballColour)
	}
	dc.Fill()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: could not save frame: %w", err)
	}
	return nil
}

// drawPolygons fills each polygon fixture of body
func drawPolygons(dc *gg.Context, body *box2d.B2Body, c color.Color) {
	fix := body.GetFixtureList()
	for fix != nil {
		shape, ok := fix.M_shape.(*box2d.B2PolygonShape)
		if !ok {
			fix = fix.M_next
			continue
		}

		path := make([][2]float64, 0, shape.M_count)
		for i, vertex := range shape.M_vertices {
			if i >= shape.M_count {
				break
			}
			trans := fix.M_body.M_xf
			vertex = box2d.B2TransformVec2Mul(trans, vertex)

			pixelCoords := WorldToPixelCoord([2]float64{vertex.X, vertex.Y})
			path = append(path, pixelCoords)
		}

		dc.ClearPath()
		for _, point := range path {
			dc.LineTo(point[0], point[1])
		}
		dc.LineTo(path[0][0], path[0][1])

		dc.SetColor(c)
		dc.Fill()
		fix = fix.M_next
	}
}

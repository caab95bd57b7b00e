// Package heatmap renders velocity grid snapshots as images, one colored
// block per road cell, and can assemble the per-tick frames into an MJPEG
// animation. It is a pure consumer of the simulation's snapshot output and
// feeds nothing back into it.
package heatmap

import (
	"image"
	"image/color"

	"github.com/hsluv/hsluv-go"

	"github.com/cxd309/nasch-engine/internal/sim"
)

// CellColor maps a snapshot cell value to a display color. Empty cells are
// black; velocities sweep from deep blue (stopped) to bright yellow (at the
// speed ceiling).
func CellColor(v int) color.RGBA {
	if v < 0 {
		return color.RGBA{A: 0xff}
	}
	frac := float64(v) / sim.MaxVelocity
	r, g, b := hsluv.HsluvToRGB(270-190*frac, 100, 25+60*frac)
	return color.RGBA{
		R: uint8(r * 0xff),
		G: uint8(g * 0xff),
		B: uint8(b * 0xff),
		A: 0xff,
	}
}

// Image renders one snapshot as an RGBA image with cellSize pixels per road
// cell. Lanes run top to bottom, road cells left to right.
func Image(grid sim.Grid, cellSize int) *image.RGBA {
	if len(grid) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	w := len(grid[0]) * cellSize
	h := len(grid) * cellSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for lane, row := range grid {
		for cell, v := range row {
			c := CellColor(v)
			for y := lane * cellSize; y < (lane+1)*cellSize; y++ {
				for x := cell * cellSize; x < (cell+1)*cellSize; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
	return img
}

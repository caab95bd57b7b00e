package heatmap

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/cxd309/nasch-engine/internal/sim"
)

const jpegQuality = 90

// Video writes snapshot frames to an MJPEG AVI file.
type Video struct {
	writer   mjpeg.AviWriter
	cellSize int
	buf      bytes.Buffer
}

// NewVideo creates an AVI file sized for a road of numLanes lanes and length
// cells, rendered at cellSize pixels per cell and played back at fps frames
// per second.
func NewVideo(path string, numLanes, length, cellSize int, fps int32) (*Video, error) {
	writer, err := mjpeg.New(path, int32(length*cellSize), int32(numLanes*cellSize), fps)
	if err != nil {
		return nil, fmt.Errorf("creating AVI writer: %w", err)
	}
	return &Video{writer: writer, cellSize: cellSize}, nil
}

// AddFrame renders one snapshot and appends it to the animation.
func (v *Video) AddFrame(grid sim.Grid) error {
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, Image(grid, v.cellSize), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := v.writer.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close finalises the AVI file.
func (v *Video) Close() error {
	return v.writer.Close()
}

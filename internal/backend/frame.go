package backend

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// Frame dimensions of the synthetic video feed.
const (
	FrameWidth  = 320
	FrameHeight = 240
)

var emotionColors = map[string]color.RGBA{
	"angry":    {R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff},
	"disgust":  {R: 0x38, G: 0x8e, B: 0x3c, A: 0xff},
	"fear":     {R: 0x6a, G: 0x1b, B: 0x9a, A: 0xff},
	"happy":    {R: 0xfb, G: 0xc0, B: 0x2d, A: 0xff},
	"sad":      {R: 0x19, G: 0x76, B: 0xd2, A: 0xff},
	"surprise": {R: 0xf5, G: 0x7c, B: 0x00, A: 0xff},
	"neutral":  {R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff},
}

var (
	background = color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
	unknown    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RenderFrame draws one synthetic frame: a box per detected face, colored by
// its emotion, and a moving scan line so consecutive frames differ.
func RenderFrame(frame int, emotions []string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	scan := frame % FrameHeight
	if scan < 0 {
		scan += FrameHeight
	}
	draw.Draw(img, image.Rect(0, scan, FrameWidth, scan+2), &image.Uniform{C: color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff}}, image.Point{}, draw.Src)

	if n := len(emotions); n > 0 {
		slot := FrameWidth / n
		for i, e := range emotions {
			c, ok := emotionColors[e]
			if !ok {
				c = unknown
			}
			face := image.Rect(i*slot+slot/6, FrameHeight/4, (i+1)*slot-slot/6, FrameHeight*3/4)
			outline(img, face, c, 3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// outline draws a rectangle border of the given thickness.
func outline(img draw.Image, r image.Rectangle, c color.Color, thickness int) {
	src := &image.Uniform{C: c}
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

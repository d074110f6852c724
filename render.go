package main

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	renderCellSize = 4
	renderMargin   = 16
	// animations are capped so a full game still plays in a few seconds
	renderTotalDurationMS = 13000
	renderMaxFrameDelay   = 20 // in 10ms GIF ticks
)

// renderReplayGIF renders collected frames into a small GIF animation
// with per-snake colors and length labels, ending on a green or red
// screen depending on whether we won.
func renderReplayGIF(frames []ReplayFrame, won bool) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to render")
	}

	delayPerFrame := renderTotalDurationMS / len(frames) / 10
	if delayPerFrame > renderMaxFrameDelay {
		delayPerFrame = renderMaxFrameDelay
	}
	if delayPerFrame < 1 {
		delayPerFrame = 1
	}

	var images []*image.Paletted
	var delays []int

	for i, frame := range frames {
		img, palette := renderFrame(&frame)

		paletted := image.NewPaletted(img.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})

		images = append(images, paletted)
		if i == len(frames)-1 {
			delays = append(delays, 200)
		} else {
			delays = append(delays, delayPerFrame)
		}
	}

	// closing screen: green for a win, red otherwise
	finalColor := color.RGBA{255, 0, 0, 255}
	if won {
		finalColor = color.RGBA{0, 255, 0, 255}
	}
	finalScreen := image.NewPaletted(images[0].Bounds(), color.Palette{finalColor})
	images = append(images, finalScreen)
	delays = append(delays, 100)

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image: images,
		Delay: delays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gif: %w", err)
	}

	return buf.Bytes(), nil
}

func renderFrame(frame *ReplayFrame) (*image.RGBA, []color.Color) {
	palette := []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{100, 100, 100, 255},
	}

	canvasWidth := frame.Width*renderCellSize + renderMargin
	canvasHeight := frame.Height * renderCellSize
	if canvasHeight < 32 {
		canvasHeight = 32
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)

	offsetX := renderMargin

	labelY := 10
	for _, snake := range frame.Snakes {
		if snake.Death != nil {
			continue
		}

		bodyColor, err := hexToRGBA(snake.Color)
		if err != nil {
			bodyColor = colorFromName(snake.Name)
		}
		headColor := lighten(bodyColor)
		palette = append(palette, bodyColor, headColor)

		for i, segment := range snake.Body {
			// board y grows upward, image y grows downward
			flippedY := frame.Height - 1 - segment.Y
			c := bodyColor
			if i == 0 {
				c = headColor
			}
			drawCell(img, offsetX+segment.X*renderCellSize, flippedY*renderCellSize, c)
		}

		drawLabel(img, 1, labelY, fmt.Sprintf("%3d", len(snake.Body)), bodyColor)
		labelY += 12
	}

	green := color.RGBA{0, 255, 0, 255}
	for _, food := range frame.Food {
		flippedY := frame.Height - 1 - food.Y
		drawCell(img, offsetX+food.X*renderCellSize, flippedY*renderCellSize, green)
	}

	return img, palette
}

func drawCell(img *image.RGBA, x, y int, c color.RGBA) {
	for i := 0; i < renderCellSize; i++ {
		for j := 0; j < renderCellSize; j++ {
			if image.Pt(x+i, y+j).In(img.Bounds()) {
				img.Set(x+i, y+j, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

// colorFromName derives a stable color from a snake name for snakes
// without a configured one.
func colorFromName(name string) color.RGBA {
	h := sha1.New()
	h.Write([]byte(name))
	sum := h.Sum(nil)
	return color.RGBA{sum[0], sum[1], sum[2], 255}
}

func lighten(c color.RGBA) color.RGBA {
	brighter := func(v uint8) uint8 {
		if v > 225 {
			return 255
		}
		return v + 30
	}
	return color.RGBA{R: brighter(c.R), G: brighter(c.G), B: brighter(c.B), A: c.A}
}

func hexToRGBA(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

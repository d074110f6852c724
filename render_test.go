package main

import (
	"bytes"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToRGBA(t *testing.T) {
	testCases := []struct {
		Description string
		Input       string
		Expected    color.RGBA
		WantErr     bool
	}{
		{"red with hash", "#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"green without hash", "00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"mixed case", "#aAbBcC", color.RGBA{170, 187, 204, 255}, false},
		{"too short", "#FFF", color.RGBA{}, true},
		{"garbage", "#zzzzzz", color.RGBA{}, true},
		{"empty", "", color.RGBA{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			got, err := hexToRGBA(tc.Input)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, got)
		})
	}
}

func TestColorFromNameIsStable(t *testing.T) {
	first := colorFromName("some snake")
	second := colorFromName("some snake")
	other := colorFromName("another snake")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestRenderReplayGIF(t *testing.T) {
	frames := []ReplayFrame{
		{
			Turn:   0,
			Width:  5,
			Height: 5,
			Snakes: []FrameSnake{
				{ID: "a", Name: "alpha", Body: []Coord{{X: 2, Y: 2}, {X: 2, Y: 1}}, Color: "#FF0000"},
			},
			Food: []Coord{{X: 0, Y: 0}},
		},
		{
			Turn:   1,
			Width:  5,
			Height: 5,
			Snakes: []FrameSnake{
				{ID: "a", Name: "alpha", Body: []Coord{{X: 2, Y: 3}, {X: 2, Y: 2}}, Color: "#FF0000"},
			},
		},
	}

	data, err := renderReplayGIF(frames, true)
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	// two turns plus the closing result screen
	assert.Len(t, decoded.Image, 3)
	assert.Equal(t, 200, decoded.Delay[1], "the last game frame lingers")
}

func TestRenderReplayGIFNoFrames(t *testing.T) {
	_, err := renderReplayGIF(nil, false)
	assert.Error(t, err)
}

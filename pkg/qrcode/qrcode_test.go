package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestGenerate(t *testing.T) {
	const link = "https://nhu.com.na/events/e1"
	data, err := Generate(link, NHU)
	require.NoError(t, err)

	img := decode(t, data)
	assert.Equal(t, image.Rect(0, 0, NHU.Size, NHU.Size), img.Bounds())
	assert.True(t, sameColor(NHU.Background, img.At(0, 0)), "quiet zone is background")

	code, err := qrcode.New(link, NHU.RecoveryLevel)
	require.NoError(t, err)
	code.DisableBorder = true
	module := float64(NHU.Size) / float64(len(code.Bitmap())+2*NHU.QuietZone)

	// center of the first module of the top-left finder pattern
	at := int((float64(NHU.QuietZone) + 0.5) * module)
	assert.True(t, sameColor(NHU.Foreground, img.At(at, at)), "finder pattern is foreground")
}

func TestGenerate_Empty(t *testing.T) {
	_, err := Generate("", NHU)
	require.Error(t, err)
}

func TestGenerate_Logo(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 16, 16))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			logo.Set(x, y, red)
		}
	}
	style := NHU
	style.Logo = logo

	data, err := Generate("https://nhu.com.na/teams/t1", style)
	require.NoError(t, err)

	img := decode(t, data)
	r, g, b, _ := img.At(style.Size/2, style.Size/2).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(50))
	assert.Less(t, b>>8, uint32(50))
}

func TestInFinder(t *testing.T) {
	assert.True(t, inFinder(0, 0, 25))
	assert.True(t, inFinder(24, 6, 25))
	assert.True(t, inFinder(6, 24, 25))
	assert.False(t, inFinder(24, 24, 25))
	assert.False(t, inFinder(12, 12, 25))
}

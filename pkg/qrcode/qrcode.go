// Package qr draws the share codes printed on event posters and team pages.
package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// Style describes how a code is drawn.
type Style struct {
	Size          int     // side of the image in pixels, quiet zone included
	QuietZone     int     // empty border, in modules
	DotScale      float64 // dot diameter relative to a module; finder patterns are always square
	Background    color.Color
	Foreground    color.Color
	RecoveryLevel qrcode.RecoveryLevel

	Logo           image.Image // optional, drawn over the center of the code
	LogoScale      float64     // logo side relative to Size
	LogoBackground color.Color
}

// Generate encodes content and returns the code as a PNG.
func Generate(content string, style Style) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}
	if style.Logo != nil && style.RecoveryLevel < qrcode.High {
		// the logo hides modules, only high recovery levels survive it
		style.RecoveryLevel = qrcode.High
	}

	code, err := qrcode.New(content, style.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()
	n := len(bitmap)

	module := float64(style.Size) / float64(n+2*style.QuietZone)
	offset := float64(style.QuietZone) * module

	dc := gg.NewContext(style.Size, style.Size)
	dc.SetColor(style.Background)
	dc.Clear()

	logoSide := 0.0
	if style.Logo != nil {
		logoSide = float64(style.Size) * style.LogoScale
	}
	center := float64(style.Size) / 2

	dc.SetColor(style.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			left := offset + float64(x)*module
			top := offset + float64(y)*module
			if logoSide > 0 && overlaps(left, top, module, center, logoSide) {
				continue
			}
			if inFinder(x, y, n) {
				dc.DrawRectangle(left, top, module, module)
			} else {
				dc.DrawCircle(left+module/2, top+module/2, module*style.DotScale/2)
			}
		}
	}
	dc.Fill()

	if style.Logo != nil {
		drawLogo(dc, style, int(logoSide))
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// inFinder reports whether module (x, y) belongs to one of the three 7x7 position markers.
func inFinder(x, y, n int) bool {
	const size = 7
	return (x < size && y < size) || (x >= n-size && y < size) || (x < size && y >= n-size)
}

// overlaps reports whether a module intersects the logo square centered on the image.
func overlaps(left, top, module, center, side float64) bool {
	half := side / 2
	return left+module > center-half && left < center+half && top+module > center-half && top < center+half
}

func drawLogo(dc *gg.Context, style Style, side int) {
	if side <= 0 {
		return
	}
	logo := resize.Resize(uint(side), uint(side), style.Logo, resize.Lanczos3)
	c := float64(style.Size) / 2

	dc.SetColor(style.LogoBackground)
	dc.DrawCircle(c, c, float64(side)/2)
	dc.Fill()
	dc.DrawImageAnchored(logo, style.Size/2, style.Size/2, 0.5, 0.5)
}

// LoadLogo reads a logo image for Style.Logo.
func LoadLogo(path string) (image.Image, error) {
	return gg.LoadImage(path)
}

package qr

import (
	"image/color"

	"github.com/skip2/go-qrcode"
)

// NHU is the union's house style: navy dots on white.
var NHU = Style{
	Size:           512,
	QuietZone:      2,
	DotScale:       0.9,
	Background:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:     color.RGBA{R: 0, G: 46, B: 93, A: 255},
	RecoveryLevel:  qrcode.Medium,
	LogoScale:      0.2,
	LogoBackground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

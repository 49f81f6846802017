// Package icon renders the generated tray icon and the fallback badge
// icons used by launcher slots that have no image of their own.
package icon

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"fyne.io/fyne/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	traySize   = 64
	trayMargin = 8

	badgeWidth  = 48
	badgeHeight = 40
)

// trayColor is the fill of the generated tray icon.
var trayColor = color.NRGBA{R: 30, G: 144, B: 255, A: 255}

// badgePalette supplies deterministic tile colors for badge icons.
var badgePalette = []color.NRGBA{
	{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
	{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
	{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	{R: 0xed, G: 0xc9, B: 0x48, A: 0xff},
	{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
	{R: 0x9c, G: 0x75, B: 0x5f, A: 0xff},
}

var (
	trayOnce  sync.Once
	trayBytes []byte

	badgeMu    sync.Mutex
	badgeCache = map[string]fyne.Resource{}
)

// Tray returns the PNG bytes of the generated tray icon: a filled circle
// on a transparent ground.
func Tray() []byte {
	trayOnce.Do(func() {
		img := image.NewNRGBA(image.Rect(0, 0, traySize, traySize))
		fillCircle(img, trayMargin, trayColor)

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			// Encoding an in-memory NRGBA image cannot fail in practice.
			panic(fmt.Sprintf("encode tray icon: %v", err))
		}
		trayBytes = buf.Bytes()
	})
	return trayBytes
}

// Badge returns a tile icon carrying the initial rune of name, colored
// deterministically from the name. Results are cached per name.
func Badge(name string) fyne.Resource {
	badgeMu.Lock()
	defer badgeMu.Unlock()

	if res, ok := badgeCache[name]; ok {
		return res
	}

	img := image.NewNRGBA(image.Rect(0, 0, badgeWidth, badgeHeight))
	bg := badgePalette[hashString(name)%uint32(len(badgePalette))]
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawInitial(img, initialOf(name))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(fmt.Sprintf("encode badge icon: %v", err))
	}

	res := fyne.NewStaticResource("badge-"+name+".png", buf.Bytes())
	badgeCache[name] = res
	return res
}

func fillCircle(img *image.NRGBA, margin int, c color.NRGBA) {
	b := img.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	r := float64(b.Dx())/2 - float64(margin)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func drawInitial(img *image.NRGBA, r rune) {
	face := basicfont.Face7x13
	label := string(r)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		Face: face,
	}
	width := d.MeasureString(label)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(badgeWidth) - width) / 2,
		Y: fixed.I((badgeHeight + face.Ascent - face.Descent) / 2),
	}
	d.DrawString(label)
}

func initialOf(name string) rune {
	for _, r := range strings.TrimSpace(name) {
		return unicode.ToUpper(r)
	}
	return '?'
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

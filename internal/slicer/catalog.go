package slicer

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// CatalogSize is the edge length of built-in pictures. It divides evenly
// by every supported grid size.
const CatalogSize = 120

// Picture is a built-in, procedurally drawn puzzle picture.
type Picture struct {
	Name        string
	Description string
	draw        func(x, y float64) color.RGBA // x, y in [0, 1)
}

var catalog = map[string]Picture{
	"sunset": {
		Name:        "sunset",
		Description: "Sun setting over a calm sea",
		draw:        sunset,
	},
	"rings": {
		Name:        "rings",
		Description: "Off-centre rainbow rings",
		draw:        rings,
	},
	"mosaic": {
		Name:        "mosaic",
		Description: "Tiled floor with a diagonal sash",
		draw:        mosaic,
	},
	"aurora": {
		Name:        "aurora",
		Description: "Northern lights above dark hills",
		draw:        aurora,
	},
}

// DefaultPicture is used when no picture is configured.
const DefaultPicture = "sunset"

// Names returns the built-in picture names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the built-in picture with the given name.
func Lookup(name string) (Picture, bool) {
	p, ok := catalog[name]
	return p, ok
}

// Image renders the picture at CatalogSize.
func (p Picture) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, CatalogSize, CatalogSize))
	for y := 0; y < CatalogSize; y++ {
		for x := 0; x < CatalogSize; x++ {
			img.SetRGBA(x, y, p.draw(float64(x)/CatalogSize, float64(y)/CatalogSize))
		}
	}
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	t = math.Max(0, math.Min(1, t))
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), 255}
}

func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1) * 6
	i := math.Floor(h)
	f := h - i
	p, q, t := v*(1-s), v*(1-s*f), v*(1-s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

func sunset(x, y float64) color.RGBA {
	const horizon = 0.62
	if y >= horizon {
		sea := mix(color.RGBA{20, 60, 110, 255}, color.RGBA{5, 20, 50, 255}, (y-horizon)/(1-horizon))
		// Sun reflection.
		if math.Abs(x-0.35) < 0.08*(1-(y-horizon)) && int(y*40)%2 == 0 {
			return mix(sea, color.RGBA{255, 200, 80, 255}, 0.7)
		}
		return sea
	}
	sky := mix(color.RGBA{250, 120, 60, 255}, color.RGBA{60, 30, 100, 255}, 1-y/horizon)
	if d := math.Hypot(x-0.35, (y-0.5)*1.1); d < 0.14 {
		return mix(color.RGBA{255, 230, 120, 255}, sky, d/0.14*0.4)
	}
	return sky
}

func rings(x, y float64) color.RGBA {
	d := math.Hypot(x-0.4, y-0.45)
	band := math.Floor(d * 10)
	if d > 0.62 {
		return color.RGBA{30, 30, 40, 255}
	}
	return hsv(band/8, 0.75, 0.95-0.04*band)
}

func mosaic(x, y float64) color.RGBA {
	const cells = 6
	cx, cy := math.Floor(x*cells), math.Floor(y*cells)
	if math.Abs(x-y*0.8-0.1) < 0.06 {
		return color.RGBA{240, 240, 230, 255}
	}
	fx, fy := x*cells-cx, y*cells-cy
	if fx < 0.08 || fy < 0.08 {
		return color.RGBA{60, 50, 45, 255}
	}
	return hsv((cx*3+cy*5)/cells/4, 0.55+0.05*cy, 0.6+0.05*cx)
}

func aurora(x, y float64) color.RGBA {
	hill := 0.78 + 0.08*math.Sin(x*7+1) + 0.04*math.Sin(x*17)
	if y > hill {
		return color.RGBA{10, 25, 20, 255}
	}
	night := mix(color.RGBA{5, 10, 35, 255}, color.RGBA{15, 35, 70, 255}, y)
	wave := 0.35 + 0.12*math.Sin(x*9) + 0.05*math.Cos(x*23)
	if d := math.Abs(y - wave); d < 0.16 {
		glow := hsv(0.33+0.25*x, 0.8, 0.95)
		return mix(glow, night, d/0.16)
	}
	// A few fixed stars.
	if int(x*CatalogSize)*7%53 == int(y*CatalogSize)%53 && y < 0.3 {
		return color.RGBA{250, 250, 255, 255}
	}
	return night
}

package chart

import "image/color"

// NamedColor is one palette entry.
type NamedColor struct {
	Name  string
	Color color.RGBA
}

// Palette is the fixed, ordered region palette. The region at position i
// of the categorical order is drawn with Palette[i%len(Palette)] in every
// chart.
var Palette = []NamedColor{
	{"steelblue", color.RGBA{R: 70, G: 130, B: 180, A: 255}},
	{"darkorange", color.RGBA{R: 255, G: 140, B: 0, A: 255}},
	{"forestgreen", color.RGBA{R: 34, G: 139, B: 34, A: 255}},
	{"firebrick", color.RGBA{R: 178, G: 34, B: 34, A: 255}},
	{"mediumpurple", color.RGBA{R: 147, G: 112, B: 219, A: 255}},
	{"sienna", color.RGBA{R: 160, G: 82, B: 45, A: 255}},
	{"orchid", color.RGBA{R: 218, G: 112, B: 214, A: 255}},
	{"gray", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	{"olivedrab", color.RGBA{R: 107, G: 142, B: 35, A: 255}},
	{"darkturquoise", color.RGBA{R: 0, G: 206, B: 209, A: 255}},
}

// PieAnnotation is a literal wedge label placed at polar coordinates:
// Theta in degrees counterclockwise from three o'clock, R as a fraction of
// the pie radius.
type PieAnnotation struct {
	Region string
	Text   string
	Theta  float64
	R      float64
}

// PieAnnotations are the five regions labeled on the pie, chosen to match
// the reference dashboard. The region's rounded total is appended below
// Text.
var PieAnnotations = []PieAnnotation{
	{Region: "CAISO", Text: "CAISO", Theta: 60, R: 0.62},
	{Region: "ERCOT", Text: "ERCOT", Theta: 160, R: 0.66},
	{Region: "Non-ISO West", Text: "West\n(non-ISO)", Theta: 305, R: 0.6},
	{Region: "Non-ISO Southeast", Text: "Southeast\n(non-ISO)", Theta: 225, R: 0.64},
	{Region: "PJM", Text: "PJM", Theta: 262, R: 0.78},
}

// RegionColor returns the palette color for the region at index in the
// categorical order.
func RegionColor(index int) color.RGBA {
	if index < 0 {
		index = 0
	}
	return Palette[index%len(Palette)].Color
}

// translucent returns c with its alpha scaled to a, premultiplied as
// color.RGBA requires.
func translucent(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}

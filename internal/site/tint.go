package site

import (
	"fmt"
	"html/template"
)

// tintPalette holds the highlight and shadow colours of imageless grid cells.
var tintPalette = [][2]string{
	{"#ffd166", "#8f5200"},
	{"#ef476f", "#5d102b"},
	{"#06d6a0", "#0a3b2f"},
	{"#118ab2", "#0c2e40"},
	{"#f2e94e", "#574c00"},
	{"#c77dff", "#3a1b5d"},
	{"#ff9b85", "#531f10"},
}

// TintStyle is the background of the i-th grid cell without an image.
func TintStyle(i int) template.CSS {
	n := len(tintPalette)
	pair := tintPalette[(i%n+n)%n]
	return template.CSS(fmt.Sprintf(
		"background: radial-gradient(circle at 40%% 35%%, %s, %s 65%%, #0a0a0a 85%%);",
		pair[0], pair[1],
	))
}

package export

import "gonum.org/v1/plot/vg"

// Style holds all rendering parameters. Pass it explicitly to each
// export call; there is no ambient default beyond [DefaultStyle].
type Style struct {
	// Width and Height size every figure.
	Width  vg.Length
	Height vg.Length
	// PhysicalSize is the spatial edge length of a square map in
	// micrometers; heatmap axes are labeled in these units.
	PhysicalSize float64
	// Colors is the palette resolution for heatmaps.
	Colors int
	// LegendLabels is the number of value labels on a heatmap legend.
	LegendLabels int
}

// DefaultStyle mirrors the house figure conventions: square 12 cm
// figures, a 10 um map edge, and a 255-step palette.
func DefaultStyle() Style {
	return Style{
		Width:        12 * vg.Centimeter,
		Height:       12 * vg.Centimeter,
		PhysicalSize: 10.0,
		Colors:       255,
		LegendLabels: 5,
	}
}

package peakfit_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/specmap/peakfit"
)

func ExampleFit() {
	wl := make([]float64, 201)
	spectrum := make([]float64, len(wl))

	for i := range wl {
		wl[i] = 500 + float64(i)/2
		t := (wl[i] - 550) / 12
		spectrum[i] = 75 * math.Exp(-0.5*t*t)
	}

	res, err := peakfit.Fit(wl, spectrum, peakfit.Config{Model: peakfit.Single})
	if err != nil {
		panic(err)
	}

	fmt.Printf("amplitude: %.0f\n", res.Params["amplitude"])
	fmt.Printf("center: %.0f\n", res.Params["center"])
	fmt.Printf("sigma: %.0f\n", res.Params["sigma"])
	// Output:
	// amplitude: 75
	// center: 550
	// sigma: 12
}

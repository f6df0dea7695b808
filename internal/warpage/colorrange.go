package warpage

// ColorRange is the value-to-color bound shared by every visualisation in a
// batch, guaranteeing visual comparability across heterogeneous grids.
type ColorRange struct {
	VMin float64 `json:"vmin"`
	VMax float64 `json:"vmax"`
}

// ResolveColorRange aggregates per-file summaries into one ColorRange:
// vmin is the minimum of the defined minima and vmax the maximum of the
// defined maxima, unless a bound is overridden, in which case the override
// wins unconditionally for that bound. The aggregate is a pure function of
// the set, so permuting the file order cannot change the result. With zero
// defined summaries there is nothing to scale and resolution fails with
// NoDataError.
func ResolveColorRange(summaries []Summary, vminOverride, vmaxOverride *float64) (ColorRange, error) {
	var (
		min, max float64
		seen     bool
	)
	for _, s := range summaries {
		if !s.Defined() {
			continue
		}
		if !seen {
			min, max = s.Min, s.Max
			seen = true
			continue
		}
		if s.Min < min {
			min = s.Min
		}
		if s.Max > max {
			max = s.Max
		}
	}

	if !seen {
		return ColorRange{}, &NoDataError{Reason: "color-range resolution had no non-empty grids to aggregate"}
	}

	cr := ColorRange{VMin: min, VMax: max}
	if vminOverride != nil {
		cr.VMin = *vminOverride
	}
	if vmaxOverride != nil {
		cr.VMax = *vmaxOverride
	}
	return cr, nil
}

package dome

import "gonum.org/v1/gonum/floats"

// Summary describes the angular extent of a result set. Extents are plain
// minimum/maximum values and do not account for wrap-around at azimuth 0.
type Summary struct {
	Count        int
	MinAzimuth   float64
	MaxAzimuth   float64
	MinElevation float64
	MaxElevation float64
}

// Summarize returns the count and angular extent of rs. An empty set has
// zero extents.
func Summarize(rs ResultSet) Summary {
	if len(rs) == 0 {
		return Summary{}
	}
	az := make([]float64, len(rs))
	el := make([]float64, len(rs))
	for i, r := range rs {
		az[i] = r.Azimuth
		el[i] = r.Elevation
	}
	return Summary{
		Count:        len(rs),
		MinAzimuth:   floats.Min(az),
		MaxAzimuth:   floats.Max(az),
		MinElevation: floats.Min(el),
		MaxElevation: floats.Max(el),
	}
}

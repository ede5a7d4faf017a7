package graph

import "fmt"

// WeightPolicy decides the weight an originating edge passes to its arcs.
type WeightPolicy uint8

const (
	// WeightMin takes the lower mean abundance of the two unitigs.
	WeightMin WeightPolicy = iota
	// WeightSource takes the abundance of the unitig that listed the edge.
	WeightSource
	// WeightMean averages both unitigs.
	WeightMean
)

// ParseWeightPolicy accepts "min", "source" and "mean"; empty means min.
func ParseWeightPolicy(s string) (WeightPolicy, error) {
	switch s {
	case "", "min":
		return WeightMin, nil
	case "source":
		return WeightSource, nil
	case "mean":
		return WeightMean, nil
	}
	return WeightMin, fmt.Errorf("unknown weight policy %q (want min, source or mean)", s)
}

func (p WeightPolicy) String() string {
	switch p {
	case WeightSource:
		return "source"
	case WeightMean:
		return "mean"
	}
	return "min"
}

// Weigh computes the weight of an edge from its endpoint unitigs. It is
// applied once per edge so an arc and its mirror always agree, and distinct
// edges keep distinct weights even when their arcs share endpoints.
func (p WeightPolicy) Weigh(from, to Node) float64 {
	switch p {
	case WeightSource:
		return from.Abundance
	case WeightMean:
		return (from.Abundance + to.Abundance) / 2
	}
	if to.Abundance < from.Abundance {
		return to.Abundance
	}
	return from.Abundance
}

package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue shortens large values: 650000 -> "650K", 1250000 -> "1.2M"
func FormatValue(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	switch {
	case value >= 1e6:
		return sign + trimZeros(fmt.Sprintf("%.1f", value/1e6)) + "M"
	case value >= 1e3:
		return sign + trimZeros(fmt.Sprintf("%.1f", value/1e3)) + "K"
	}
	return sign + strconv.FormatFloat(value, 'f', -1, 64)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// formatTick formats an axis tick, using as many decimals as the step needs
func formatTick(v, step float64) string {
	if step >= 1000 {
		return FormatValue(v)
	}
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// niceTicks spans [lo, hi] with about target ticks at 1/2/5×10^k steps.
// The first tick is <= lo and the last is >= hi. Non-finite bounds give [0, 1].
func niceTicks(lo, hi float64, target int) []float64 {
	if target < 2 {
		target = 2
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		if lo == 0 {
			hi = 1
		} else {
			pad := math.Abs(lo) * 0.1
			lo, hi = lo-pad, hi+pad
		}
	}

	step := niceNumber((hi-lo)/float64(target-1))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step

	var ticks []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > end+step/2 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func niceNumber(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case f < 1.5:
		nf = 1
	case f < 3:
		nf = 2
	case f < 7:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

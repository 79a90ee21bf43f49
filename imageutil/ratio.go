package imageutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SupportedRatios is the closed set of aspect ratios the backends accept,
// in match-priority order. ClosestRatio never invents a ratio outside it.
var SupportedRatios = []string{
	"1:1",
	"2:3",
	"3:2",
	"3:4",
	"4:3",
	"4:5",
	"5:4",
	"9:16",
	"16:9",
	"21:9",
}

// parseRatio splits "16:9" into (16, 9). Inputs come from SupportedRatios
// or validated callers, so malformed strings fall back to 1:1.
func parseRatio(ratio string) (int, int) {
	parts := strings.SplitN(ratio, ":", 2)
	if len(parts) != 2 {
		return 1, 1
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 1, 1
	}
	return w, h
}

func ratioValue(ratio string) float64 {
	w, h := parseRatio(ratio)
	return float64(w) / float64(h)
}

// ClosestRatio returns the supported ratio numerically nearest to
// width/height. Ties resolve to the earlier entry in SupportedRatios.
// Degenerate dimensions return "1:1".
func ClosestRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return "1:1"
	}

	current := float64(width) / float64(height)
	closest := "1:1"
	minDiff := math.Inf(1)

	for _, ratio := range SupportedRatios {
		diff := math.Abs(current - ratioValue(ratio))
		if diff < minDiff {
			minDiff = diff
			closest = ratio
		}
	}
	return closest
}

// AdjustResolution stretches (width, height) to exactly satisfy targetRatio.
// The larger input dimension stays fixed and the other is recomputed,
// rounded to the nearest integer. Landscape and square keep width fixed.
func AdjustResolution(width, height int, targetRatio string) (int, int) {
	rw, rh := parseRatio(targetRatio)
	target := float64(rw) / float64(rh)

	if width >= height {
		return width, int(math.Round(float64(width) / target))
	}
	return int(math.Round(float64(height) * target)), height
}

// RatioString reduces width:height by their GCD for a human-readable
// simplified ratio. Diagnostic only; dispatch decisions use ClosestRatio.
func RatioString(width, height int) string {
	if width <= 0 || height <= 0 {
		return "1:1"
	}
	d := gcd(width, height)
	return fmt.Sprintf("%d:%d", width/d, height/d)
}

// IsSupportedRatio reports whether the dimensions reduce to a member of
// SupportedRatios exactly.
func IsSupportedRatio(width, height int) bool {
	current := RatioString(width, height)
	for _, ratio := range SupportedRatios {
		if ratio == current {
			return true
		}
	}
	return false
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

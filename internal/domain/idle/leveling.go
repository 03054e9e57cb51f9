package idle

import "math"

type LevelInfo struct {
	Level          int     `json:"level"`
	XPIntoLevel    float64 `json:"xp_into_level"`
	XPForNextLevel float64 `json:"xp_for_next_level"`
	Progress       float64 `json:"progress"`
}

func LevelFor(totalXP float64) LevelInfo {
	xp := math.Floor(math.Max(0, totalXP))
	if math.IsNaN(xp) || math.IsInf(xp, 0) {
		xp = 0
	}

	level := levelAt(xp)
	floor := XPForLevel(level)
	span := XPForLevel(level+1) - floor

	info := LevelInfo{
		Level:          level,
		XPIntoLevel:    xp - floor,
		XPForNextLevel: span,
		Progress:       1,
	}
	if span > 0 {
		info.Progress = clamp01(info.XPIntoLevel / span)
	}
	return info
}

// maxLevel caps the curve so levels fit an int on every platform.
const maxLevel = 1 << 30

// levelAt inverts the curve: with l = level-1, the largest l where
// linear*l + quadratic*l*l <= xp. Float rounding is corrected afterwards.
func levelAt(xp float64) int {
	a, b := float64(LevelCurveQuadratic), float64(LevelCurveLinear)
	l := (-b + math.Sqrt(b*b+4*a*xp)) / (2 * a)
	if l >= maxLevel-2 {
		return maxLevel
	}
	level := 1 + int(math.Max(0, math.Floor(l)))
	for i := 0; i < 3 && xp >= XPForLevel(level+1); i++ {
		level++
	}
	for i := 0; i < 3 && level > 1 && xp < XPForLevel(level); i++ {
		level--
	}
	return level
}

// XPForLevel is the total XP needed to reach level. Level 1 starts at 0.
func XPForLevel(level int) float64 {
	if level <= 1 {
		return 0
	}
	l := float64(level - 1)
	return math.Floor(LevelCurveLinear*l + LevelCurveQuadratic*l*l)
}

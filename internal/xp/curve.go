// ABOUTME: Level curve mapping cumulative XP to levels and back.
// ABOUTME: Pure functions; the same curve is used globally and per category.
package xp

import "math"

// LevelFromXP returns the level for a cumulative XP total:
// floor(1 + (xp/100)^0.8). Monotonic non-decreasing; LevelFromXP(0) == 1.
func LevelFromXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Floor(1 + math.Pow(float64(xp)/100, 0.8)))
}

// XPRequiredForLevel returns the cumulative XP threshold needed to reach
// the given level: ceil(level^1.25 * 100). Level 1 and below need nothing.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return int(math.Ceil(math.Pow(float64(level), 1.25) * 100))
}

// XPToNextLevel returns how much XP is still needed to reach the next level.
func XPToNextLevel(currentXP, currentLevel int) int {
	remaining := XPRequiredForLevel(currentLevel+1) - currentXP
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProgressPercent returns how far the user is between the current level's
// threshold and the next level's threshold, clamped to [0,100].
// Uses the threshold-difference formula.
func ProgressPercent(currentXP, currentLevel int) int {
	floor := XPRequiredForLevel(currentLevel)
	ceil := XPRequiredForLevel(currentLevel + 1)
	if ceil <= floor {
		return 100
	}
	pct := (currentXP - floor) * 100 / (ceil - floor)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

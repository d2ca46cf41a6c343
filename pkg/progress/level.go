package progress

// BaseLevelCost is the experience needed to complete level 1. Level L costs
// BaseLevelCost*L.
const BaseLevelCost = 400

// LevelInfo is the level derived from a cumulative experience total.
type LevelInfo struct {
	Current int `json:"current_level"`
	Next    int `json:"next_level"`
	ToNext  int `json:"exp_to_next"` // experience still missing to reach Next
}

// CalculateLevel walks the cost curve from level 1, paying for each level
// while the remaining experience covers it. Negative totals count as zero.
func CalculateLevel(exp int) LevelInfo {
	remaining := max(exp, 0)
	level := 1
	for remaining >= BaseLevelCost*level {
		remaining -= BaseLevelCost * level
		level++
	}
	return LevelInfo{
		Current: level,
		Next:    level + 1,
		ToNext:  BaseLevelCost*level - remaining,
	}
}

// CostThrough returns the cumulative experience spent completing levels
// 1 through level. It returns 0 for level <= 0.
func CostThrough(level int) int {
	if level <= 0 {
		return 0
	}
	return BaseLevelCost * level * (level + 1) / 2
}

// Progress returns how far into the current level exp is, as a percentage
// of that level's cost.
func (l LevelInfo) Progress() float64 {
	cost := BaseLevelCost * l.Current
	return float64(cost-l.ToNext) / float64(cost) * 100
}

package alert

// MinCount and MaxCount bound the configurable alerts-per-block
// setting. Counts outside the range clamp rather than error so a
// malformed stored setting still produces reminders.
const (
	MinCount = 1
	MaxCount = 5
)

var presets = map[int][]int{
	1: {5},
	2: {10, 5},
	3: {30, 10, 5},
	4: {30, 15, 10, 5},
	5: {30, 20, 15, 10, 5},
}

// Preset returns the minutes-before offsets for an alert-count setting.
// The last reminder is always 5 minutes out; higher counts add earlier
// lead-ins.
func Preset(count int) []int {
	if count < MinCount {
		count = MinCount
	}
	if count > MaxCount {
		count = MaxCount
	}
	minutes := make([]int, len(presets[count]))
	copy(minutes, presets[count])
	return minutes
}

package model

import (
	"encoding/json"
	"strings"
)

// AlertTarget selects which edge of a block alert offsets count from.
type AlertTarget string

// Alert targets.
const (
	AlertTargetStart AlertTarget = "start"
	AlertTargetEnd   AlertTarget = "end"
)

// Anchor returns the anchor minute for this target given block bounds.
func (t AlertTarget) Anchor(startMin, endMin int) int {
	if t == AlertTargetEnd {
		return endMin
	}
	return startMin
}

// Name returns the canonical target name. Anything but "end" counts
// as "start", matching Anchor.
func (t AlertTarget) Name() string {
	if t == AlertTargetEnd {
		return string(AlertTargetEnd)
	}
	return string(AlertTargetStart)
}

// StringList is a string slice that also unmarshals from a single JSON
// string. Stored schedules written by earlier displays carry the label
// in either shape, so both must deserialize cleanly.
type StringList []string

// UnmarshalJSON accepts "label" as well as ["part", "part"].
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// TimeBlock is one scheduled interval of the day as stored.
type TimeBlock struct {
	Start        string      `json:"start"`
	End          string      `json:"end"`
	Label        StringList  `json:"label,omitempty"`
	Tasks        []string    `json:"tasks,omitempty"`
	AlertMinutes []int       `json:"alertMinutes,omitempty"`
	AlertTarget  AlertTarget `json:"alertTarget,omitempty"`
}

// DisplayLabel renders the label for display. Multi-part labels are
// joined with " / ".
func (b *TimeBlock) DisplayLabel() string {
	return strings.TrimSpace(strings.Join(b.Label, " / "))
}

// TaskList resolves the effective task list: an explicit task list wins,
// then a multi-part label, then the single label. Entries are trimmed
// and empty ones dropped. An interval with nothing left still yields one
// empty task so it is never dropped from the built schedule.
func (b *TimeBlock) TaskList() []string {
	var raw []string
	switch {
	case len(b.Tasks) > 0:
		raw = b.Tasks
	case len(b.Label) > 1:
		raw = b.Label
	default:
		raw = []string{b.DisplayLabel()}
	}

	tasks := make([]string, 0, len(raw))
	for _, task := range raw {
		if task = strings.TrimSpace(task); task != "" {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		tasks = []string{""}
	}
	return tasks
}

// BuiltBlock is a display-ready interval derived from a TimeBlock.
// Multi-task blocks are split into one BuiltBlock per task; sub-blocks
// inherit the parent's alert configuration.
type BuiltBlock struct {
	Start        string      `json:"start"`
	End          string      `json:"end"`
	StartMin     int         `json:"startMin"`
	EndMin       int         `json:"endMin"`
	Label        string      `json:"label"`
	AlertMinutes []int       `json:"alertMinutes,omitempty"`
	AlertTarget  AlertTarget `json:"alertTarget,omitempty"`
}

// KeyPart identifies the block inside per-day storage keys.
func (b *BuiltBlock) KeyPart() string {
	return b.Start + "-" + b.End
}

// Duration returns the block length in minutes.
func (b *BuiltBlock) Duration() int {
	return b.EndMin - b.StartMin
}

// Contains reports whether the given minute falls inside the block.
// A block whose start lies after its end is treated as wrapping past
// midnight.
func (b *BuiltBlock) Contains(min int) bool {
	if b.StartMin > b.EndMin {
		return min >= b.StartMin || min < b.EndMin
	}
	return min >= b.StartMin && min < b.EndMin
}

// Package schedule implements the daily schedule core: validation of
// stored time blocks, expansion into display-ready built blocks, and
// location of the block containing "now". It is the single authority on
// schedule shape; nothing else may persist an unvalidated schedule.
package schedule

import (
	"sort"
	"strings"

	errs "github.com/carebell/carebell/internal/errors"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
	"github.com/carebell/carebell/internal/validate"
)

// resolved is one block reduced to minute bounds plus its 1-indexed
// input position for error reporting.
type resolved struct {
	pos      int
	startMin int
	endMin   int
}

// Validate checks a submitted schedule and returns the first problem
// found as a positional error; a valid schedule returns nil. Blocks may
// touch but must not overlap.
func Validate(blocks []model.TimeBlock) error {
	if len(blocks) == 0 {
		return errs.ErrEmptySchedule
	}

	entries := make([]resolved, 0, len(blocks))
	for i, block := range blocks {
		pos := i + 1

		start := strings.TrimSpace(block.Start)
		if start == "" {
			return errs.NewValidationError(pos, "start", "start time is required")
		}
		startMin, err := timeutil.ToMinutes(start)
		if err != nil {
			return errs.NewValidationError(pos, "start", "invalid start time")
		}

		end := strings.TrimSpace(block.End)
		if end == "" {
			return errs.NewValidationError(pos, "end", "end time is required")
		}
		endMin, err := timeutil.ToMinutes(end)
		if err != nil {
			return errs.NewValidationError(pos, "end", "invalid end time")
		}

		if startMin >= endMin {
			return errs.NewValidationError(pos, "end", "end must be after start")
		}

		if validate.Label(block.DisplayLabel()) == "" && !hasTask(block.Tasks) {
			return errs.NewValidationError(pos, "label", "label or tasks required")
		}

		entries = append(entries, resolved{pos: pos, startMin: startMin, endMin: endMin})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].startMin < entries[j].startMin
	})

	for i := 1; i < len(entries); i++ {
		if entries[i].startMin < entries[i-1].endMin {
			return errs.NewValidationError(entries[i].pos, "start", "overlaps an earlier block")
		}
	}

	return nil
}

func hasTask(tasks []string) bool {
	for _, task := range tasks {
		if validate.Label(task) != "" {
			return true
		}
	}
	return false
}

// Clean returns a copy of the blocks with every label part and task
// cleaned for display. Stored schedules never carry control characters
// onto the panel.
func Clean(blocks []model.TimeBlock) []model.TimeBlock {
	cleaned := make([]model.TimeBlock, len(blocks))
	copy(cleaned, blocks)
	for i := range cleaned {
		if len(cleaned[i].Label) > 0 {
			label := make(model.StringList, len(cleaned[i].Label))
			for j, part := range cleaned[i].Label {
				label[j] = validate.Label(part)
			}
			cleaned[i].Label = label
		}
		if len(cleaned[i].Tasks) > 0 {
			tasks := make([]string, len(cleaned[i].Tasks))
			for j, task := range cleaned[i].Tasks {
				tasks[j] = validate.Label(task)
			}
			cleaned[i].Tasks = tasks
		}
	}
	return cleaned
}

// Sorted returns a copy of blocks ordered by start minute, so stored
// schedules keep a stable on-disk order. Blocks whose start does not
// parse sort to the end, keeping their relative order.
func Sorted(blocks []model.TimeBlock) []model.TimeBlock {
	sorted := make([]model.TimeBlock, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})
	return sorted
}

func sortKey(block model.TimeBlock) int {
	min, err := timeutil.ToMinutes(strings.TrimSpace(block.Start))
	if err != nil {
		return timeutil.MinutesPerDay + 1
	}
	return min
}

// Package alert evaluates reminder offsets against the wall clock.
// Every scan recomputes from the current minute, so a machine that
// slept through a reminder simply misses it; per-day fired marks stop
// a reminder from repeating once it has sounded.
package alert

import (
	"context"
	"fmt"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

// MarkStore persists per-day fired flags so neither repeated ticks nor
// a restart can refire an alert.
type MarkStore interface {
	Marked(ctx context.Context, dateKey, blockKey, alertType string) (bool, error)
	Mark(ctx context.Context, dateKey, blockKey, alertType string) error
}

// Alert is one due reminder.
type Alert struct {
	BlockIndex int               `json:"blockIndex"`
	BlockKey   string            `json:"blockKey"`
	Label      string            `json:"label"`
	Target     model.AlertTarget `json:"target"`
	Minutes    int               `json:"minutes"`
	Message    string            `json:"message"`
}

// Evaluator scans built blocks for due reminders.
type Evaluator struct {
	marks MarkStore
}

// NewEvaluator creates an evaluator backed by the given mark store.
func NewEvaluator(marks MarkStore) *Evaluator {
	return &Evaluator{marks: marks}
}

// Scan returns the one alert due at nowMin, or nil when nothing is due.
// Blocks already done today are skipped. At most one alert fires per
// scan across the whole schedule so reminder dialogs never stack; the
// next scan picks up whatever else was due.
func (e *Evaluator) Scan(ctx context.Context, dateKey string, nowMin int, blocks []model.BuiltBlock, done map[int]bool, defaults []int) (*Alert, error) {
	for i := range blocks {
		if done[i] {
			continue
		}
		block := &blocks[i]
		anchor := block.AlertTarget.Anchor(block.StartMin, block.EndMin)

		for _, m := range effectiveMinutes(block.AlertMinutes, defaults) {
			target := anchor - m
			if target < 0 || target >= timeutil.MinutesPerDay {
				continue
			}
			if target != nowMin {
				continue
			}

			alertType := fmt.Sprintf("%s%d", block.AlertTarget.Name(), m)
			marked, err := e.marks.Marked(ctx, dateKey, block.KeyPart(), alertType)
			if err != nil {
				return nil, err
			}
			if marked {
				continue
			}
			if err := e.marks.Mark(ctx, dateKey, block.KeyPart(), alertType); err != nil {
				return nil, err
			}

			return &Alert{
				BlockIndex: i,
				BlockKey:   block.KeyPart(),
				Label:      block.Label,
				Target:     model.AlertTarget(block.AlertTarget.Name()),
				Minutes:    m,
				Message:    message(block.AlertTarget, m),
			}, nil
		}
	}
	return nil, nil
}

// effectiveMinutes resolves the offsets for a block: its own list wins
// over the configured defaults; duplicates and offsets outside
// (0,1440) drop out.
func effectiveMinutes(own, defaults []int) []int {
	minutes := own
	if len(minutes) == 0 {
		minutes = defaults
	}

	seen := make(map[int]bool, len(minutes))
	out := make([]int, 0, len(minutes))
	for _, m := range minutes {
		if m <= 0 || m >= timeutil.MinutesPerDay || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func message(target model.AlertTarget, minutes int) string {
	if target == model.AlertTargetEnd {
		return fmt.Sprintf("%d minutes remaining", minutes)
	}
	return fmt.Sprintf("%d minutes until start", minutes)
}

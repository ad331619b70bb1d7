package tui

import (
	"fmt"
	"strings"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/engine"
	"github.com/carebell/carebell/internal/model"
)

// NowComponent displays the current activity.
type NowComponent struct {
	Snap  *engine.Snapshot
	Width int
}

// NewNowComponent creates a new current-activity component.
func NewNowComponent(snap *engine.Snapshot, width int) *NowComponent {
	return &NowComponent{
		Snap:  snap,
		Width: width,
	}
}

// View renders the current-activity component.
func (nc *NowComponent) View() string {
	var content strings.Builder

	if len(nc.Snap.Blocks) == 0 {
		content.WriteString(StyleSubtitle.Render("Nothing scheduled today."))
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Ask your family to set up a plan."))

		box := StyleIdleBox.Width(nc.Width - 4)
		return box.Render(content.String())
	}

	block := nc.Snap.Blocks[nc.Snap.CurrentIndex]
	nowMin := nc.Snap.Now.Hour()*60 + nc.Snap.Now.Minute()

	// The highlighted block is the containing one when the clock is
	// inside it, otherwise the next upcoming one.
	if block.Contains(nowMin) {
		content.WriteString(StyleNow.Render("● NOW"))
	} else {
		content.WriteString(StyleUpcoming.Render("○ COMING UP"))
	}
	content.WriteString("\n\n")

	content.WriteString(StyleBlockLabel.Render(block.Label))
	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%s – %s", block.Start, block.End)))

	if nc.Snap.Done[nc.Snap.CurrentIndex] {
		content.WriteString("\n\n")
		content.WriteString(StyleDone.Render("✓ Done"))
	}

	box := StyleNowBox.Width(nc.Width - 4)
	return box.Render(content.String())
}

// EventBanner displays the active event override.
type EventBanner struct {
	Event *model.Event
	Width int
}

// NewEventBanner creates a new event banner.
func NewEventBanner(ev *model.Event, width int) *EventBanner {
	return &EventBanner{
		Event: ev,
		Width: width,
	}
}

// View renders the event banner.
func (eb *EventBanner) View() string {
	if eb.Event == nil {
		return ""
	}

	var content strings.Builder

	content.WriteString(StyleTitle.Render("Today"))
	content.WriteString("\n")

	if eb.Event.AllDay {
		content.WriteString(StyleBlockLabel.Render(eb.Event.Label))
	} else {
		content.WriteString(StyleBlockLabel.Render(eb.Event.Label))
		content.WriteString("\n")
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%s – %s", eb.Event.Start, eb.Event.End)))
	}

	box := StyleEventBox.Width(eb.Width - 4)
	return box.Render(content.String())
}

// AlertBanner displays a reminder that just fired.
type AlertBanner struct {
	Alert *alert.Alert
	Width int
}

// NewAlertBanner creates a new reminder banner.
func NewAlertBanner(a *alert.Alert, width int) *AlertBanner {
	return &AlertBanner{
		Alert: a,
		Width: width,
	}
}

// View renders the reminder banner.
func (ab *AlertBanner) View() string {
	if ab.Alert == nil {
		return ""
	}

	text := fmt.Sprintf("⏰ %s: %s", ab.Alert.Label, ab.Alert.Message)

	box := StyleAlertBox.Width(ab.Width - 4)
	return box.Render(StyleAlertText.Render(text))
}

// ScheduleComponent displays the full day plan.
type ScheduleComponent struct {
	Snap  *engine.Snapshot
	Width int
}

// NewScheduleComponent creates a new day plan component.
func NewScheduleComponent(snap *engine.Snapshot, width int) *ScheduleComponent {
	return &ScheduleComponent{
		Snap:  snap,
		Width: width,
	}
}

// View renders the day plan component.
func (sc *ScheduleComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Today's Plan"))
	content.WriteString("\n")

	if len(sc.Snap.Blocks) == 0 {
		content.WriteString(StyleSubtitle.Render("No blocks yet"))
	} else {
		for i, block := range sc.Snap.Blocks {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(sc.renderBlock(i, block))
		}
	}

	box := StyleScheduleBox.Width(sc.Width - 4)
	return box.Render(content.String())
}

func (sc *ScheduleComponent) renderBlock(index int, block model.BuiltBlock) string {
	marker := "  "
	if index == sc.Snap.CurrentIndex {
		marker = StyleCurrent.Render("→ ")
	}

	line := fmt.Sprintf("%s  %s", block.Start, block.Label)
	switch {
	case sc.Snap.Done[index]:
		line = StyleDone.Render(line + " ✓")
	case index == sc.Snap.CurrentIndex:
		line = StyleCurrent.Render(line)
	default:
		line = StyleSubtitle.Render(line)
	}

	return marker + line
}

// HelpBar renders the help bar at the bottom. The done keys disappear
// while an event override is on screen.
func HelpBar(showDone bool) string {
	keys := []struct {
		key  string
		desc string
	}{
		{"d", "done"},
		{"u", "undo"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		if !showDone && (k.key == "d" || k.key == "u") {
			continue
		}
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

package schedule

import (
	"strings"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

// Build expands stored blocks into built blocks in input order. Blocks
// whose bounds do not parse are skipped. A block with several tasks is
// split into contiguous sub-blocks dividing the interval as evenly as
// possible, earlier tasks taking the remainder minutes; sub-blocks
// inherit the parent's alert configuration. Every parsable input block
// yields at least one output block.
func Build(blocks []model.TimeBlock) []model.BuiltBlock {
	built := make([]model.BuiltBlock, 0, len(blocks))

	for _, block := range blocks {
		startMin, err := timeutil.ToMinutes(strings.TrimSpace(block.Start))
		if err != nil {
			continue
		}
		endMin, err := timeutil.ToMinutes(strings.TrimSpace(block.End))
		if err != nil {
			continue
		}

		tasks := block.TaskList()
		if len(tasks) == 1 {
			built = append(built, model.BuiltBlock{
				Start:        timeutil.FormatMinutes(startMin),
				End:          timeutil.FormatMinutes(endMin),
				StartMin:     startMin,
				EndMin:       endMin,
				Label:        tasks[0],
				AlertMinutes: block.AlertMinutes,
				AlertTarget:  block.AlertTarget,
			})
			continue
		}

		duration := endMin - startMin
		n := len(tasks)
		base := duration / n
		remainder := duration % n

		cursor := startMin
		for i, task := range tasks {
			length := base
			if i < remainder {
				length++
			}
			subEnd := cursor + length

			built = append(built, model.BuiltBlock{
				Start:        timeutil.FormatMinutes(cursor),
				End:          timeutil.FormatMinutes(subEnd),
				StartMin:     cursor,
				EndMin:       subEnd,
				Label:        task,
				AlertMinutes: block.AlertMinutes,
				AlertTarget:  block.AlertTarget,
			})
			cursor = subEnd
		}
	}

	return built
}

// Package extract converts raw annotated text into an ordered checkpoint
// sequence. It is a single-pass pattern matcher: no I/O, no state, and
// identical input always yields an identical output sequence.
package extract

import (
	"regexp"
	"strings"

	"github.com/reasonlab/epistress/internal/schema"
)

// checkpointPattern recognizes [TAG: content] and bare [TAG]. Tags are
// matched case-sensitively; content runs to the first closing bracket, so
// content containing a literal ] is truncated there. That truncation is a
// grammar limitation, not a parser bug.
var checkpointPattern = regexp.MustCompile(
	`\[(ASSUME|CLAIM|BRANCH|SELECT|CONCLUDE)(?::\s*([^\]]*))?\]`,
)

// ParseCheckpoints scans text left to right and returns every well-formed
// checkpoint annotation in order of appearance. Bracket text that does not
// match the grammar (unknown tag, wrong case, missing colon with trailing
// content) is skipped silently; no partial checkpoint is ever emitted.
func ParseCheckpoints(text string) []schema.Checkpoint {
	matches := checkpointPattern.FindAllStringSubmatch(text, -1)

	checkpoints := make([]schema.Checkpoint, 0, len(matches))
	for i, m := range matches {
		checkpoints = append(checkpoints, schema.Checkpoint{
			Index: i,
			Type:  schema.CheckpointType(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}
	return checkpoints
}

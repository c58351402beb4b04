// Package patch implements line-oriented edits for TCL model scripts.
package patch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// commentMarker is the TCL line-comment prefix.
const commentMarker = "#"

// 🔧 Patcher applies individual text transformations to a script file. Each
// operation takes a resolved file path, reads the whole file as lines,
// transforms them, and writes back only when something changed.
type Patcher struct{}

// 🏭 NewPatcher creates a new Patcher
func NewPatcher() *Patcher {
	return &Patcher{}
}

// searchLine is the per-line text that patterns are searched against: the
// line without its terminator, so '$' anchors behave as callers expect.
func searchLine(line string) string {
	return strings.TrimSuffix(line, "\n")
}

// 💉 InjectLine inserts content immediately after the first line matching
// afterPattern. A trailing newline is appended to content if the caller
// omitted one. Returns false and leaves the file untouched when no line
// matches. An empty pattern matches every line, so injection lands after
// the first line.
func (p *Patcher) InjectLine(ctx context.Context, path string, content string, afterPattern string) (bool, error) {
	re, err := regexp.Compile(afterPattern)
	if err != nil {
		return false, errors.Errorf("compiling inject pattern %q: %w", afterPattern, err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		return false, err
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	newLines := make([]string, 0, len(lines)+1)
	injected := false
	for _, line := range lines {
		newLines = append(newLines, line)
		if !injected && re.MatchString(searchLine(line)) {
			newLines = append(newLines, content)
			injected = true
		}
	}

	if !injected {
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("pattern", afterPattern).Msg("inject pattern not found")
		return false, nil
	}

	if err := WriteLines(ctx, path, newLines); err != nil {
		return false, err
	}
	return true, nil
}

// 🔄 ReplaceVariableValue rewrites every `set <name> <value>` assignment of
// varName to carry newValue. Matched lines are replaced wholesale with the
// canonical form `set <name> <value>\n`; original indentation and any
// trailing content on the line are intentionally discarded. Returns true
// when at least one line was rewritten.
func (p *Patcher) ReplaceVariableValue(ctx context.Context, path string, varName string, newValue any) (bool, error) {
	if varName == "" {
		return false, errors.Errorf("variable name is required")
	}

	// QuoteMeta keeps names with regex metacharacters literal.
	re := regexp.MustCompile(`^\s*set\s+` + regexp.QuoteMeta(varName) + `\s+`)
	replacement := fmt.Sprintf("set %s %v\n", varName, newValue)

	lines, err := ReadLines(path)
	if err != nil {
		return false, err
	}

	newLines := make([]string, 0, len(lines))
	modified := false
	for _, line := range lines {
		if re.MatchString(line) {
			newLines = append(newLines, replacement)
			modified = true
		} else {
			newLines = append(newLines, line)
		}
	}

	if !modified {
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("variable", varName).Msg("no assignment found")
		return false, nil
	}

	if err := WriteLines(ctx, path, newLines); err != nil {
		return false, err
	}
	return true, nil
}

// 💬 CommentOutBlock prefixes every line between a startPattern match and
// the next endPattern match (both inclusive) with the comment marker.
// Lines already commented stay as they are but still belong to the block,
// so an end pattern on a pre-commented line still closes it. A line
// matching both patterns opens and closes the block by itself. If the end
// pattern never matches, the block runs to end of file. Returns the number
// of lines newly commented.
func (p *Patcher) CommentOutBlock(ctx context.Context, path string, startPattern string, endPattern string) (int, error) {
	startRe, err := regexp.Compile(startPattern)
	if err != nil {
		return 0, errors.Errorf("compiling start pattern %q: %w", startPattern, err)
	}
	endRe, err := regexp.Compile(endPattern)
	if err != nil {
		return 0, errors.Errorf("compiling end pattern %q: %w", endPattern, err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		return 0, err
	}

	newLines := make([]string, 0, len(lines))
	insideBlock := false
	modified := 0
	for _, line := range lines {
		if !insideBlock && startRe.MatchString(searchLine(line)) {
			insideBlock = true
		}

		if !insideBlock {
			newLines = append(newLines, line)
			continue
		}

		if !strings.HasPrefix(strings.TrimSpace(line), commentMarker) {
			newLines = append(newLines, commentMarker+" "+line)
			modified++
		} else {
			newLines = append(newLines, line)
		}

		// End check happens after the line is processed, so the closing
		// line is part of the block.
		if endRe.MatchString(searchLine(line)) {
			insideBlock = false
		}
	}

	if modified == 0 {
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("start", startPattern).Str("end", endPattern).Msg("no lines commented")
		return 0, nil
	}

	if err := WriteLines(ctx, path, newLines); err != nil {
		return 0, err
	}
	return modified, nil
}

// ✏️ ReplaceStringContent replaces every occurrence of oldString with
// newString across the whole file. The search is literal and case
// sensitive; occurrences never span line boundaries. Returns the total
// number of replacements. Zero replacements leaves the file untouched.
func (p *Patcher) ReplaceStringContent(ctx context.Context, path string, oldString string, newString string) (int, error) {
	if oldString == "" {
		return 0, errors.Errorf("old string is required")
	}

	lines, err := ReadLines(path)
	if err != nil {
		return 0, err
	}

	newLines := make([]string, 0, len(lines))
	total := 0
	for _, line := range lines {
		count := strings.Count(line, oldString)
		if count > 0 {
			line = strings.ReplaceAll(line, oldString, newString)
			total += count
		}
		newLines = append(newLines, line)
	}

	if total == 0 {
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("old", oldString).Msg("string not found")
		return 0, nil
	}

	if err := WriteLines(ctx, path, newLines); err != nil {
		return 0, err
	}
	return total, nil
}

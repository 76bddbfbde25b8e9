package gen

import (
	"strings"
)

const wrapWidth = 80

// WrapOutput re-flows the rendered header to 80 columns. Preprocessor
// lines are never wrapped, continuation lines pick up the original
// indentation plus four spaces (with a "//" prefix carried over for
// wrapped comments), trailing whitespace is stripped, and runs of blank
// lines collapse to one.
func WrapOutput(output string) string {
	var ret []string
	appendLine := func(line string) {
		line = strings.TrimRight(line, " \t")
		if len(ret) == 0 || len(ret[len(ret)-1]) > 0 || len(line) > 0 {
			ret = append(ret, line)
		}
	}
	lines := strings.Split(output, "\n")
	// A trailing newline must not read as an extra blank input line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if len(line) < wrapWidth || strings.HasPrefix(trimmed, "#") {
			appendLine(line)
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		subsequentIndent := indent + "    "
		if strings.HasPrefix(line, "//") {
			subsequentIndent = "//" + subsequentIndent
		}
		for _, wrapped := range wrapLine(line, subsequentIndent) {
			appendLine(wrapped)
		}
	}
	ret = append(ret, "")
	return strings.Join(ret, "\n")
}

// wrapLine greedily breaks one long line at spaces, without breaking
// individual words, indenting continuations with subsequentIndent.
func wrapLine(line, subsequentIndent string) []string {
	words := strings.Fields(line)
	firstIndent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

	var lines []string
	current := firstIndent
	lineHasWord := false
	for _, word := range words {
		candidate := current
		if lineHasWord {
			candidate += " "
		}
		candidate += word
		if lineHasWord && len(candidate) > wrapWidth {
			lines = append(lines, current)
			current = subsequentIndent + word
		} else {
			current = candidate
		}
		lineHasWord = true
	}
	lines = append(lines, current)
	return lines
}

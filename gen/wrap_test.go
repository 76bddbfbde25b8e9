package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapOutputShortLinesUntouched(t *testing.T) {
	input := "jint ret = 0;\n  return ret;\n"
	assert.Equal(t, input, WrapOutput(input))
}

func TestWrapOutputNeverWrapsPreprocessorLines(t *testing.T) {
	line := "#define SampleForTests_clazz(env) base::android::LazyGetClass(env, kSampleForTestsClassPath, &g_SampleForTests_clazz)"
	got := WrapOutput(line + "\n")
	assert.Equal(t, line+"\n", got)
}

func TestWrapOutputWrapsLongLines(t *testing.T) {
	words := strings.Repeat("word ", 30)
	got := WrapOutput("  " + strings.TrimSpace(words) + "\n")
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 80, "line %q", line)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "      "),
			"continuation %q lacks indent plus four spaces", line)
	}
}

func TestWrapOutputCarriesCommentPrefix(t *testing.T) {
	input := "// " + strings.TrimSpace(strings.Repeat("token ", 20)) + "\n"
	got := WrapOutput(input)
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "//"), "line %q lost comment prefix", line)
	}
}

func TestWrapOutputStripsTrailingWhitespace(t *testing.T) {
	got := WrapOutput("int x;   \n")
	assert.Equal(t, "int x;\n", got)
}

func TestWrapOutputCollapsesBlankRuns(t *testing.T) {
	got := WrapOutput("a\n\n\n\nb\n")
	assert.Equal(t, "a\n\nb\n", got)
}

func TestWrapOutputDoesNotBreakWords(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := WrapOutput("prefix " + long + "\n")
	assert.Contains(t, got, long)
}

package lexer

import (
	"fmt"
	"strings"
	"testing"
)

const samplePage = `~
# Welcome

Some *intro* text with a [link](/about) and **bold** words.

::image[a cat][/media/cat.png]
::tile[Blog][Posts and notes][/blog][/media/blog.png]
::notice[Heads up: this page is new]
::date
`

func BenchmarkLexer(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lexer := New(samplePage)
		for {
			if _, ok := lexer.NextToken(); !ok {
				break
			}
		}
	}
}

// generateLargePage repeats a mix of every construct sectionCount times
func generateLargePage(sectionCount int) string {
	var page strings.Builder
	for i := 0; i < sectionCount; i++ {
		fmt.Fprintf(&page, "## Section %d\n", i)
		fmt.Fprintf(&page, "Paragraph %d has _italic_, __bold__ and ***both***, see [page %d](/p/%d).\n\n", i, i, i)
		fmt.Fprintf(&page, "::link-tile[Item %d][/items/%d][/media/%d.png]\n", i, i, i)
		fmt.Fprintf(&page, "::code[go][src/example_%d.go]\n", i)
	}
	return page.String()
}

func BenchmarkLexerLarge(b *testing.B) {
	input := generateLargePage(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokens := Tokenize(input)

		// Report metrics for monitoring
		if i == 0 {
			b.ReportMetric(float64(len(tokens)), "tokens/op")
			b.ReportMetric(float64(len(input)), "bytes/op")
		}
	}
}

func BenchmarkLexerScenarios(b *testing.B) {
	scenarios := []struct {
		name  string
		input string
	}{
		{"plain text", strings.Repeat("just some words without markup ", 200)},
		{"emphasis heavy", strings.Repeat("*a* **b** ***c*** _d_ ", 200)},
		{"nested brackets", strings.Repeat("[a [b [c] d] e](/x) ", 200)},
		{"many lines", strings.Repeat("line\n", 1000)},
		{"unicode", strings.Repeat("héllo wörld ünïcödé ", 200)},
	}

	for _, scenario := range scenarios {
		b.Run(scenario.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Tokenize(scenario.input)
			}
		})
	}
}

func TestLargePageIsTotal(t *testing.T) {
	input := generateLargePage(500)

	var got strings.Builder
	for _, tok := range Tokenize(input) {
		got.WriteString(tok.Value)
	}

	if got.String() != input {
		t.Fatal("tokens of a large page do not reconstruct it")
	}
}

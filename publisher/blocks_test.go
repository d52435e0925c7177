package publisher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "heading paragraph bullet",
			in:   "# Title\n\nline one\nline two\n- bullet\n",
			want: []Block{NewHeading(1, "Title"), NewParagraph("line one line two"), NewBulletItem("bullet")},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			in:   "  \n\t\n",
			want: nil,
		},
		{
			name: "reference line stands alone",
			in:   "prose before\n\n[1] http://example.com\n\nprose after",
			want: []Block{
				NewParagraph("prose before"),
				NewParagraph("[1] http://example.com"),
				NewParagraph("prose after"),
			},
		},
		{
			name: "reference line flushes adjacent prose",
			in:   "prose before\n[2] https://b.example\nprose after",
			want: []Block{
				NewParagraph("prose before"),
				NewParagraph("[2] https://b.example"),
				NewParagraph("prose after"),
			},
		},
		{
			name: "level two before level one",
			in:   "## Europe\ntext\n# Top",
			want: []Block{NewHeading(2, "Europe"), NewParagraph("text"), NewHeading(1, "Top")},
		},
		{
			name: "lines are trimmed before classification",
			in:   "   ## Indented\n   - item  \n  a  \n b ",
			want: []Block{NewHeading(2, "Indented"), NewBulletItem("item"), NewParagraph("a b")},
		},
		{
			name: "unterminated code fence is prose",
			in:   "```go\nfmt.Println(1)",
			want: []Block{NewParagraph("```go fmt.Println(1)")},
		},
		{
			name: "level three heading is prose",
			in:   "### Topic: USA\nbody",
			want: []Block{NewParagraph("### Topic: USA body")},
		},
		{
			name: "markers without space are prose",
			in:   "#hashtag\n-dash\n[x] not a ref",
			want: []Block{NewParagraph("#hashtag -dash [x] not a ref")},
		},
		{
			name: "crlf line endings",
			in:   "# T\r\nbody\r\n",
			want: []Block{NewHeading(1, "T"), NewParagraph("body")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertBlocks(tt.in))
		})
	}
}

func TestConvertBlocks_NoAdjacentParagraphsWithoutBoundary(t *testing.T) {
	in := strings.Join([]string{
		"# Report", "", "a", "b", "", "c", "- x", "d", "[1] u", "e", "## S", "f",
	}, "\n")
	blocks := ConvertBlocks(in)

	// Adjacent paragraphs may only come from a blank-line boundary or a reference line.
	want := []Block{
		NewHeading(1, "Report"),
		NewParagraph("a b"),
		NewParagraph("c"),
		NewBulletItem("x"),
		NewParagraph("d"),
		NewParagraph("[1] u"),
		NewParagraph("e"),
		NewHeading(2, "S"),
		NewParagraph("f"),
	}
	assert.Equal(t, want, blocks)
}

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "paragraph", Paragraph.String())
	assert.Equal(t, "bullet", BulletItem.String())
}

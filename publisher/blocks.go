package publisher

import (
	"regexp"
	"strings"
)

// BlockKind tags a Block.
type BlockKind int

const (
	// Paragraph is prose, including standalone reference lines.
	Paragraph BlockKind = iota
	// Heading is a level 1 or 2 title.
	Heading
	// BulletItem is one "- " list entry.
	BulletItem
)

// String is the lower-case kind name used in logs.
func (k BlockKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case BulletItem:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Block is one unit of page content. Level is only meaningful for headings.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text"`
}

// NewHeading returns a heading block of the given level.
func NewHeading(level int, text string) Block { return Block{Kind: Heading, Level: level, Text: text} }

// NewParagraph returns a paragraph block.
func NewParagraph(text string) Block { return Block{Kind: Paragraph, Text: text} }

// NewBulletItem returns a bulleted list item.
func NewBulletItem(text string) Block { return Block{Kind: BulletItem, Text: text} }

// referenceRe matches reference-list entries such as "[3] https://...".
var referenceRe = regexp.MustCompile(`^\[\d+\]`)

// blockConverter buffers consecutive prose lines into a single paragraph.
// It is idle when buf is empty and buffering otherwise.
type blockConverter struct {
	blocks []Block
	buf    []string
}

func (c *blockConverter) flush() {
	if len(c.buf) == 0 {
		return
	}
	c.blocks = append(c.blocks, NewParagraph(strings.Join(c.buf, " ")))
	c.buf = c.buf[:0]
}

func (c *blockConverter) emit(b Block) {
	c.flush()
	c.blocks = append(c.blocks, b)
}

func (c *blockConverter) line(raw string) {
	line := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(line, "## "):
		c.emit(NewHeading(2, line[3:]))
	case strings.HasPrefix(line, "# "):
		c.emit(NewHeading(1, line[2:]))
	case strings.HasPrefix(line, "- "):
		c.emit(NewBulletItem(line[2:]))
	case referenceRe.MatchString(line):
		c.emit(NewParagraph(line))
	case line == "":
		c.flush()
	default:
		c.buf = append(c.buf, line)
	}
}

// ConvertBlocks turns line-oriented markdown into blocks in source order. Anything it
// does not recognise, including code fences, is treated as prose; it never fails.
func ConvertBlocks(markdown string) []Block {
	c := &blockConverter{}
	if markdown == "" {
		return c.blocks
	}
	for _, l := range strings.Split(markdown, "\n") {
		c.line(l)
	}
	c.flush()
	return c.blocks
}

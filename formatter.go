package figtext

import "strings"

// Block is the text extracted from a single target.
type Block struct {
	Name string
	Text string
}

// FormatBlocks joins per-target text in order. With headers, each block is
// written as "<name>\n\n<text>\n" so consecutive blocks are separated by a
// blank line. Without headers the texts are concatenated as-is.
func FormatBlocks(blocks []Block, headers bool) string {
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for _, block := range blocks {
		if headers {
			b.WriteString(block.Name)
			b.WriteString("\n\n")
		}
		b.WriteString(block.Text)
		if headers {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Package report splits a free-text evaluation narrative into display
// blocks. The evaluator returns prose with optional bullet lists; structure
// is inferred by simple text-splitting, never parsed into fields.
package report

import "strings"

// Block is one display unit of the narrative.
type Block struct {
	// Bullet marks a list item; the leading marker is stripped.
	Bullet bool
	Text   string
}

var bulletMarkers = []string{"- ", "* ", "• "}

// Split breaks a narrative into paragraph and bullet blocks. Blank lines
// separate paragraphs; consecutive non-bullet lines inside a paragraph are
// joined with single spaces.
func Split(narrative string) []Block {
	var blocks []Block
	var paragraph []string

	flush := func() {
		if len(paragraph) > 0 {
			blocks = append(blocks, Block{Text: strings.Join(paragraph, " ")})
			paragraph = nil
		}
	}

	for _, line := range strings.Split(narrative, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if text, ok := bulletText(line); ok {
			flush()
			blocks = append(blocks, Block{Bullet: true, Text: text})
			continue
		}
		paragraph = append(paragraph, line)
	}
	flush()
	return blocks
}

func bulletText(line string) (string, bool) {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker)), true
		}
	}
	// Numbered list items like "1. ..." or "2) ...".
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		if i > 0 && (r == '.' || r == ')') {
			rest := strings.TrimSpace(line[i+1:])
			if rest != "" {
				return rest, true
			}
		}
		break
	}
	return "", false
}

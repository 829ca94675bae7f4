// Copyright © 2026 The Quill authors

package analysis

import (
	"regexp"
	"strings"
)

var (
	docMarkRe = regexp.MustCompile(`^\s*///`)
	docLineRe = regexp.MustCompile(`^\s*///\s*(.+)$`)
)

// Docs maps a declaration line to the documentation attached to it.
type Docs map[int]string

// Add attaches text to line. Text for a line that already has documentation
// is appended after a blank line.
func (d Docs) Add(line int, text string) {
	if prev, ok := d[line]; ok {
		d[line] = prev + "\n\n" + text
		return
	}
	d[line] = text
}

// ExtractDocs collects "///" comment blocks and attaches each block to the
// first line after it that is not itself a "///" line. Consecutive doc lines
// are joined with newlines; bare "///" lines continue a block without adding
// text.
func ExtractDocs(lines []string) Docs {
	docs := make(Docs)
	var pending []string
	inBlock := false
	for i, line := range lines {
		if docMarkRe.MatchString(line) {
			inBlock = true
			if m := docLineRe.FindStringSubmatch(line); m != nil {
				if text := strings.TrimSpace(m[1]); text != "" {
					pending = append(pending, text)
				}
			}
			continue
		}
		if !inBlock {
			continue
		}
		inBlock = false
		if len(pending) > 0 {
			docs.Add(i, strings.Join(pending, "\n"))
			pending = nil
		}
	}
	return docs
}

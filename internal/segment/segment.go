// Package segment splits a raw PassThru trace into command blocks.
package segment

import (
	"iter"
	"strings"

	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/lexicon"
)

// Blocks returns a lazy sequence of command blocks over text. Ranging over the
// sequence again restarts the scan from the beginning.
//
// A heading line opens a block and every following non-blank line belongs to
// it until the next heading. Lines seen before the first heading form a
// leading block of their own. Blank lines belong to no block. A trailing block
// cut off by end of input is still yielded.
func Blocks(text string) iter.Seq[domain.CommandBlock] {
	return func(yield func(domain.CommandBlock) bool) {
		var current *domain.CommandBlock

		lineNo := 0
		for offset := 0; offset < len(text); lineNo++ {
			end := strings.IndexByte(text[offset:], '\n')
			next := len(text)
			if end >= 0 {
				next = offset + end + 1
				end += offset
			} else {
				end = len(text)
			}

			line := strings.TrimSuffix(text[offset:end], "\r")
			lineOffset := offset
			offset = next

			if strings.TrimSpace(line) == "" {
				continue
			}

			if lexicon.IsHeading(line) && current != nil {
				if !yield(*current) {
					return
				}
				current = nil
			}

			if current == nil {
				current = &domain.CommandBlock{StartLine: lineNo, Offset: lineOffset}
			}
			current.Lines = append(current.Lines, line)
		}

		if current != nil {
			yield(*current)
		}
	}
}

// Collect drains Blocks into a slice.
func Collect(text string) []domain.CommandBlock {
	var blocks []domain.CommandBlock
	for block := range Blocks(text) {
		blocks = append(blocks, block)
	}
	return blocks
}

// NonBlankLines counts the lines of text that a segmentation must cover.
func NonBlankLines(text string) int {
	count := 0
	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

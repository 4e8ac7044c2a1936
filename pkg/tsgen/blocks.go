package tsgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlockNotFound reports that a named interface block is absent from the
// generated output. Callers removing the container block treat this as fatal
// rather than slicing text blindly.
var ErrBlockNotFound = errors.New("tsgen: interface block not found")

const (
	blockPrefix = "export interface "
	blockSuffix = " {"
)

// Block locates one top-level interface declaration in generated output.
// Start and End are inclusive line indexes; End addresses the zero-indent
// closing brace.
type Block struct {
	Name  string
	Start int
	End   int
}

// ParseBlocks splits generated TypeScript into its named top-level interface
// blocks. A block opens on a line of the exact shape "export interface X {"
// and closes on the next line that is exactly "}" — indented braces belong to
// nested members and stay inside the block. Unterminated blocks are dropped.
func ParseBlocks(content []byte) []Block {
	lines := strings.Split(string(content), "\n")

	var blocks []Block
	open := -1
	name := ""
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if open < 0 {
			if n, ok := blockName(trimmed); ok {
				open = i
				name = n
			}
			continue
		}
		if trimmed == "}" {
			blocks = append(blocks, Block{Name: name, Start: open, End: i})
			open = -1
			name = ""
		}
	}
	return blocks
}

// RemoveInterface deletes the named top-level interface block from generated
// output, returning the filtered content. A missing block is an explicit
// error: if the generator changes its emission format the caller must know
// instead of shipping a file that still contains the container.
func RemoveInterface(content []byte, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("tsgen: interface name is required")
	}

	for _, block := range ParseBlocks(content) {
		if block.Name != name {
			continue
		}
		lines := strings.Split(string(content), "\n")
		filtered := make([]string, 0, len(lines)-(block.End-block.Start+1))
		filtered = append(filtered, lines[:block.Start]...)
		filtered = append(filtered, lines[block.End+1:]...)
		return []byte(strings.Join(filtered, "\n")), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBlockNotFound, name)
}

func blockName(line string) (string, bool) {
	if !strings.HasPrefix(line, blockPrefix) || !strings.HasSuffix(line, blockSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(line, blockPrefix), blockSuffix)
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", false
	}
	return name, true
}

// Package trie builds a prefix tree of path segments from raw input lines.
package trie

import (
	"fmt"
	"strings"

	"github.com/temirov/stree/internal/types"
)

const (
	// binaryNoticePrefix starts the grep notice emitted for binary files.
	binaryNoticePrefix = "Binary file "
	// binaryNoticeSuffix ends the grep notice emitted for binary files.
	binaryNoticeSuffix = " matches"
	// grepSeparator divides the path from the match text in grep output.
	grepSeparator = ":"
	// pathSeparator divides path segments.
	pathSeparator = "/"
	// unknownGrepLineFormat reports a grep-mode line that matches neither expected shape.
	unknownGrepLineFormat = "input text is not known grep output: %s"
)

// EntryInfo is the metadata attached to the terminal node of an inserted path.
type EntryInfo struct {
	// BinaryMatch marks entries produced by the grep binary-file notice.
	BinaryMatch bool
}

// Node is one path segment in the tree. The root node carries an empty label
// and is never rendered.
type Node struct {
	Label    string
	Children map[string]*Node
	Count    int
	Info     EntryInfo
}

// Tree accumulates parsed input lines into a shared prefix tree.
type Tree struct {
	mode types.ParsingMode
	root *Node
}

// UnknownGrepLineError is returned when a grep-mode line is neither a
// binary-file notice nor a "path:match" pair.
type UnknownGrepLineError struct {
	Line string
}

// Error implements the error interface.
func (parseError *UnknownGrepLineError) Error() string {
	return fmt.Sprintf(unknownGrepLineFormat, parseError.Line)
}

// NewTree constructs an empty tree for the provided parsing mode.
func NewTree(parsingMode types.ParsingMode) *Tree {
	return &Tree{
		mode: parsingMode,
		root: newNode(""),
	}
}

func newNode(label string) *Node {
	return &Node{
		Label:    label,
		Children: map[string]*Node{},
	}
}

// Root returns the synthetic root node.
func (tree *Tree) Root() *Node {
	return tree.root
}

// Mode returns the parsing mode the tree was built for.
func (tree *Tree) Mode() types.ParsingMode {
	return tree.mode
}

// AddLine parses one raw input line according to the tree's mode and inserts
// the extracted path into the tree. Inserting the same path repeatedly
// increments the terminal node's occurrence count without duplicating nodes.
func (tree *Tree) AddLine(rawLine string) error {
	trimmedLine := strings.TrimSpace(rawLine)

	var extractedPath string
	var pathPresent bool
	var entryInformation EntryInfo

	switch tree.mode {
	case types.ParsingModeNormal:
		extractedPath = trimmedLine
		pathPresent = true
	case types.ParsingModeGrep:
		envelopeLength := len(binaryNoticePrefix) + len(binaryNoticeSuffix)
		if len(trimmedLine) >= envelopeLength &&
			strings.HasPrefix(trimmedLine, binaryNoticePrefix) &&
			strings.HasSuffix(trimmedLine, binaryNoticeSuffix) {
			extractedPath = trimmedLine[len(binaryNoticePrefix) : len(trimmedLine)-len(binaryNoticeSuffix)]
			entryInformation.BinaryMatch = true
			pathPresent = true
		} else {
			separatorIndex := strings.Index(trimmedLine, grepSeparator)
			if separatorIndex < 0 {
				return &UnknownGrepLineError{Line: trimmedLine}
			}
			extractedPath = trimmedLine[:separatorIndex]
			pathPresent = true
		}
	}

	if !pathPresent {
		return nil
	}

	currentNode := tree.root
	for _, segment := range SplitPath(extractedPath) {
		childNode, childExists := currentNode.Children[segment]
		if !childExists {
			childNode = newNode(segment)
			currentNode.Children[segment] = childNode
		}
		currentNode = childNode
	}
	currentNode.Info = entryInformation
	currentNode.Count++
	return nil
}

// SplitPath splits a path into its ordered components. A leading separator is
// preserved as the first component, so "/a/b" yields ["/", "a", "b"] while
// "a/b/c" yields ["a", "b", "c"]. Empty components are dropped.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	head, tail := splitLast(path)
	if head != "" && head != path {
		segments := SplitPath(head)
		if tail != "" {
			segments = append(segments, tail)
		}
		return segments
	}
	if head != "" {
		return []string{head}
	}
	if tail == "" {
		return nil
	}
	return []string{tail}
}

// splitLast divides a path at its final separator. Trailing separators are
// stripped from the head unless the head consists only of separators.
func splitLast(path string) (string, string) {
	separatorIndex := strings.LastIndex(path, pathSeparator)
	head, tail := path[:separatorIndex+1], path[separatorIndex+1:]
	if head != "" && strings.Trim(head, pathSeparator) != "" {
		head = strings.TrimRight(head, pathSeparator)
	}
	return head, tail
}

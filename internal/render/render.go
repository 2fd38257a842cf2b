// Package render turns a completed path trie into glyph-decorated text output.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/temirov/stree/internal/colors"
	"github.com/temirov/stree/internal/trie"
	"github.com/temirov/stree/internal/types"
	"github.com/temirov/stree/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// binaryAnnotation is the bracketed marker for binary grep matches.
	binaryAnnotation = "BIN"

	annotationOpen  = "["
	annotationClose = "] "

	newline = "\n"

	// summaryFormat lays out the directory and file tallies.
	summaryFormat = "%d %s, %d %s"

	directorySingular = "directory"
	directoryPlural   = "directories"
	fileSingular      = "file"
	filePlural        = "files"
)

// Renderer walks a trie depth-first and emits one line per node, tallying how
// many nodes were classified as directories and files.
type Renderer struct {
	// Mode is the parsing mode the input was consumed with; grep mode adds
	// per-file annotations.
	Mode types.ParsingMode
	// Palette supplies color codes and decides whether decoration is applied.
	Palette *colors.Palette
	// IsDirectory probes whether an accumulated path exists as a directory on
	// the real filesystem. It disambiguates childless nodes that are
	// directories on disk from plain files.
	IsDirectory func(path string) bool

	directoryCount int
	fileCount      int
}

// NewRenderer constructs a renderer with the default filesystem probe.
func NewRenderer(parsingMode types.ParsingMode, palette *colors.Palette) *Renderer {
	return &Renderer{
		Mode:        parsingMode,
		Palette:     palette,
		IsDirectory: isExistingDirectory,
	}
}

func isExistingDirectory(path string) bool {
	fileInformation, statError := os.Stat(path)
	return statError == nil && fileInformation.IsDir()
}

// DirectoryCount returns the number of directory-classified nodes from the
// most recent Render call.
func (renderer *Renderer) DirectoryCount() int {
	return renderer.directoryCount
}

// FileCount returns the number of file-classified nodes from the most recent
// Render call.
func (renderer *Renderer) FileCount() int {
	return renderer.fileCount
}

// Summary returns the pluralized tally line for the most recent Render call.
func (renderer *Renderer) Summary() string {
	return fmt.Sprintf(
		summaryFormat,
		renderer.directoryCount,
		utils.Pluralize(renderer.directoryCount, directorySingular, directoryPlural),
		renderer.fileCount,
		utils.Pluralize(renderer.fileCount, fileSingular, filePlural),
	)
}

// Render produces the full tree text. The synthetic root is never printed;
// its children start at an empty prefix. Siblings are visited in
// lexicographic label order regardless of insertion order.
func (renderer *Renderer) Render(tree *trie.Tree) string {
	var buffer bytes.Buffer
	renderer.directoryCount = 0
	renderer.fileCount = 0
	renderer.renderNode(&buffer, tree.Root(), nil, "", "")
	return buffer.String()
}

// renderNode prints one node and recurses into its sorted children. The
// continuation slice records, per ancestor level, whether that ancestor has
// further siblings below it and therefore contributes a vertical bar to
// descendant prefixes.
func (renderer *Renderer) renderNode(buffer *bytes.Buffer, node *trie.Node, continuation []bool, nodePrefix string, parentPath string) {
	accumulatedPath := parentPath
	nodeRendered := node.Label != ""

	if nodeRendered {
		accumulatedPath = filepath.Join(parentPath, node.Label)
		buffer.WriteString(nodePrefix)

		if len(node.Children) > 0 || renderer.IsDirectory(accumulatedPath) {
			renderer.directoryCount++
			buffer.WriteString(renderer.Palette.Colorize(node.Label, renderer.Palette.MainCode(colors.DirectoryKey)))
		} else {
			renderer.fileCount++
			if renderer.Mode == types.ParsingModeGrep {
				buffer.WriteString(renderer.renderAnnotation(node))
			}
			extension := filepath.Ext(accumulatedPath)
			buffer.WriteString(renderer.Palette.Colorize(node.Label, renderer.Palette.ExtensionCode(extension)))
		}
		buffer.WriteString(newline)
	}

	if len(node.Children) == 0 {
		return
	}

	middleContinuation := continuation
	lastContinuation := continuation
	middlePrefix := ""
	lastPrefix := ""
	if nodeRendered {
		var prefixBuilder strings.Builder
		for _, ancestorContinues := range continuation {
			if ancestorContinues {
				prefixBuilder.WriteString(treeBranchPadding)
			} else {
				prefixBuilder.WriteString(treeLastPadding)
			}
		}
		middleContinuation = appendContinuation(continuation, true)
		lastContinuation = appendContinuation(continuation, false)
		middlePrefix = prefixBuilder.String() + treeBranchConnector
		lastPrefix = prefixBuilder.String() + treeLastConnector
	}

	childLabels := make([]string, 0, len(node.Children))
	for childLabel := range node.Children {
		childLabels = append(childLabels, childLabel)
	}
	sort.Strings(childLabels)

	lastIndex := len(childLabels) - 1
	for childIndex, childLabel := range childLabels {
		if childIndex == lastIndex {
			renderer.renderNode(buffer, node.Children[childLabel], lastContinuation, lastPrefix, accumulatedPath)
		} else {
			renderer.renderNode(buffer, node.Children[childLabel], middleContinuation, middlePrefix, accumulatedPath)
		}
	}
}

// renderAnnotation formats the bracketed grep annotation for a file node.
// Only the inner text is colorized; the brackets stay plain.
func (renderer *Renderer) renderAnnotation(node *trie.Node) string {
	if node.Info.BinaryMatch {
		return annotationOpen + renderer.Palette.Colorize(binaryAnnotation, renderer.Palette.MainCode(colors.BinaryKey)) + annotationClose
	}
	occurrenceText := strconv.Itoa(node.Count)
	return annotationOpen + renderer.Palette.Colorize(occurrenceText, renderer.Palette.MainCode(colors.CountKey)) + annotationClose
}

func appendContinuation(continuation []bool, continues bool) []bool {
	extended := make([]bool, 0, len(continuation)+1)
	extended = append(extended, continuation...)
	return append(extended, continues)
}

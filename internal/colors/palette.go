// Package colors holds the ANSI color lookup tables populated from environment variables.
package colors

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultColorCode is the code used for any key absent from a table.
	DefaultColorCode = "0"
	// DirectoryKey selects the color for directory labels.
	DirectoryKey = "di"
	// BinaryKey selects the color for the binary-match annotation.
	BinaryKey = "bin"
	// CountKey selects the color for the occurrence-count annotation.
	CountKey = "count"

	// LsColorsVariable is the primary environment variable holding color entries.
	LsColorsVariable = "LS_COLORS"
	// TreeColorsVariable overrides LsColorsVariable entries for this tool.
	TreeColorsVariable = "TREE_COLORS"

	// entrySeparator divides entries inside a color environment variable.
	entrySeparator = ":"
	// assignmentSeparator divides a match key from its color code.
	assignmentSeparator = "="
	// extensionPrefix marks entries that route to the extension table.
	extensionPrefix = "*."

	// defaultCountColorCode colors the occurrence-count annotation.
	defaultCountColorCode = "01;32"
	// defaultBinaryColorCode colors the binary-match annotation.
	defaultBinaryColorCode = "01;35"

	// malformedEntryFormat reports an entry missing its assignment separator.
	malformedEntryFormat = "could not understand entry %s in environment variable %s"

	escapeSequenceStart = "\x1b["
	escapeSequenceEnd   = "m"
	resetSequence       = "\x1b[0m"
)

// Palette holds the two color lookup tables and whether decoration is active.
type Palette struct {
	Main      map[string]string
	Extension map[string]string
	Enabled   bool
}

// NewPalette constructs an empty palette.
func NewPalette(enabled bool) *Palette {
	return &Palette{
		Main:      map[string]string{},
		Extension: map[string]string{},
		Enabled:   enabled,
	}
}

// Load constructs a palette and, when color is enabled, seeds the annotation
// defaults and parses LS_COLORS followed by TREE_COLORS. When color is
// disabled the environment is not consulted at all.
func Load(enabled bool) (*Palette, error) {
	palette := NewPalette(enabled)
	if !enabled {
		return palette, nil
	}
	palette.Main[CountKey] = defaultCountColorCode
	palette.Main[BinaryKey] = defaultBinaryColorCode
	for _, variableName := range []string{LsColorsVariable, TreeColorsVariable} {
		if parseError := palette.ParseEntries(variableName, os.Getenv(variableName)); parseError != nil {
			return nil, parseError
		}
	}
	return palette, nil
}

// ParseEntries merges one colon-separated "match=code" listing into the
// palette. Entries starting with "*." route to the extension table keyed by
// the extension including its leading dot; every other entry routes to the
// main table. An entry without exactly one assignment separator is a
// configuration error naming the entry and its source variable.
func (palette *Palette) ParseEntries(variableName string, listing string) error {
	for _, entry := range strings.Split(listing, entrySeparator) {
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, assignmentSeparator)
		if len(parts) != 2 {
			return fmt.Errorf(malformedEntryFormat, entry, variableName)
		}
		matchKey, colorCode := parts[0], parts[1]
		if strings.HasPrefix(matchKey, extensionPrefix) {
			palette.Extension[matchKey[1:]] = colorCode
		} else {
			palette.Main[matchKey] = colorCode
		}
	}
	return nil
}

// MainCode returns the main-table code for the key, defaulting unresolved
// keys to DefaultColorCode.
func (palette *Palette) MainCode(key string) string {
	if colorCode, exists := palette.Main[key]; exists {
		return colorCode
	}
	return DefaultColorCode
}

// ExtensionCode returns the extension-table code for an extension (including
// its leading dot), defaulting unresolved extensions to DefaultColorCode.
func (palette *Palette) ExtensionCode(extension string) string {
	if colorCode, exists := palette.Extension[extension]; exists {
		return colorCode
	}
	return DefaultColorCode
}

// Colorize wraps text in an ANSI SGR escape sequence using the provided code.
// When the palette is disabled it returns the text unchanged.
func (palette *Palette) Colorize(text string, colorCode string) string {
	if !palette.Enabled {
		return text
	}
	return escapeSequenceStart + colorCode + escapeSequenceEnd + text + resetSequence
}

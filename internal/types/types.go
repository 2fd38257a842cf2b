// Package types defines cross‑package data structures and mode enumerations used by the stree CLI.
package types

import "fmt"

// ParsingMode selects how raw input lines are interpreted.
type ParsingMode int

const (
	// ParsingModeNoInput means no input is consumed; the directory walk is delegated and unsupported.
	ParsingModeNoInput ParsingMode = iota
	// ParsingModeNormal means every trimmed input line is a path.
	ParsingModeNormal
	// ParsingModeGrep means input lines are grep output ("path:match" or the binary-file notice).
	ParsingModeGrep
)

// ColorMode selects whether rendered output is decorated with ANSI colors.
type ColorMode int

const (
	// ColorModeNone disables color decoration entirely.
	ColorModeNone ColorMode = iota
	// ColorModeAlways enables color decoration unconditionally.
	ColorModeAlways
	// ColorModeAuto enables color decoration only when standard output is a terminal.
	ColorModeAuto
)

const (
	// InputModeNoneLiteral is the flag literal selecting ParsingModeNoInput.
	InputModeNoneLiteral = "none"
	// InputModeNormalLiteral is the flag literal selecting ParsingModeNormal.
	InputModeNormalLiteral = "normal"
	// InputModeNormalShortLiteral is the abbreviated flag literal selecting ParsingModeNormal.
	InputModeNormalShortLiteral = "n"
	// InputModeGrepLiteral is the flag literal selecting ParsingModeGrep.
	InputModeGrepLiteral = "grep"
	// InputModeGrepShortLiteral is the abbreviated flag literal selecting ParsingModeGrep.
	InputModeGrepShortLiteral = "g"

	// ColorModeNoneLiteral is the flag literal selecting ColorModeNone.
	ColorModeNoneLiteral = "none"
	// ColorModeAlwaysLiteral is the flag literal selecting ColorModeAlways.
	ColorModeAlwaysLiteral = "always"
	// ColorModeAutoLiteral is the flag literal selecting ColorModeAuto.
	ColorModeAutoLiteral = "auto"
)

const (
	// invalidInputModeFormat reports an unrecognized input mode literal.
	invalidInputModeFormat = "invalid input mode '%s'; accepted values: none, normal, n, grep, g"
	// invalidColorModeFormat reports an unrecognized color mode literal.
	invalidColorModeFormat = "invalid color mode '%s'; accepted values: none, always, auto"
)

// ParseInputMode converts a flag literal into a ParsingMode.
func ParseInputMode(literal string) (ParsingMode, error) {
	switch literal {
	case InputModeNoneLiteral:
		return ParsingModeNoInput, nil
	case InputModeNormalLiteral, InputModeNormalShortLiteral:
		return ParsingModeNormal, nil
	case InputModeGrepLiteral, InputModeGrepShortLiteral:
		return ParsingModeGrep, nil
	default:
		return ParsingModeNoInput, fmt.Errorf(invalidInputModeFormat, literal)
	}
}

// ParseColorMode converts a flag literal into a ColorMode.
func ParseColorMode(literal string) (ColorMode, error) {
	switch literal {
	case ColorModeNoneLiteral:
		return ColorModeNone, nil
	case ColorModeAlwaysLiteral:
		return ColorModeAlways, nil
	case ColorModeAutoLiteral:
		return ColorModeAuto, nil
	default:
		return ColorModeNone, fmt.Errorf(invalidColorModeFormat, literal)
	}
}

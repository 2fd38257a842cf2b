package cli

import (
	"fmt"

	"github.com/temirov/stree/internal/types"
)

// inputModeLiterals lists every accepted value of the input-mode flag.
var inputModeLiterals = map[string]struct{}{
	types.InputModeNoneLiteral:        {},
	types.InputModeNormalLiteral:      {},
	types.InputModeNormalShortLiteral: {},
	types.InputModeGrepLiteral:        {},
	types.InputModeGrepShortLiteral:   {},
}

// normalizeInputModeArguments rewrites "-i value" and "--input-mode value"
// into the "--input-mode=value" form. The flag carries an optional-value
// default, and pflag only applies it when the value is attached with '=';
// this keeps the space-separated spelling working as well.
func normalizeInputModeArguments(arguments []string) []string {
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if currentArgument == "-"+inputModeFlagShorthand || currentArgument == "--"+inputModeFlagName {
			if index+1 < len(arguments) {
				nextArgument := arguments[index+1]
				if _, known := inputModeLiterals[nextArgument]; known {
					normalized = append(normalized, fmt.Sprintf("--%s=%s", inputModeFlagName, nextArgument))
					index += 2
					continue
				}
			}
			normalized = append(normalized, "--"+inputModeFlagName)
			index++
			continue
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/temirov/stree/internal/colors"
	"github.com/temirov/stree/internal/config"
	"github.com/temirov/stree/internal/render"
	"github.com/temirov/stree/internal/services/clipboard"
	"github.com/temirov/stree/internal/services/stream"
	"github.com/temirov/stree/internal/trie"
	"github.com/temirov/stree/internal/types"
	"github.com/temirov/stree/internal/utils"
	"golang.org/x/term"
)

const (
	inputModeFlagName      = "input-mode"
	inputModeFlagShorthand = "i"
	colorFlagName          = "color"
	colorFlagShorthand     = "c"
	copyFlagName           = "copy"
	configFlagName         = "config"
	versionFlagName        = "version"
	versionTemplate        = "stree version: %s\n"

	rootUse              = "stree"
	rootShortDescription = "render stdin paths as a tree"
	rootLongDescription  = `stree reads path-like lines from standard input and renders them as a tree.
Pipe in plain paths (one per line) with -i, or grep output with -i grep, and
stree groups the entries by shared path prefixes, colorizes them from
LS_COLORS and TREE_COLORS, and reports directory and file totals.`
	rootUsageExample = `  # Group find output into a tree
  find . -name '*.go' | stree -i

  # Summarize grep matches per file, with match counts
  grep -rn TODO src | stree -i grep

  # Plain output for further processing
  git ls-files | stree -i normal -c none`

	inputModeFlagDescription = "input type: none, normal (n) or grep (g); -i without a value means normal"
	colorFlagDescription     = "color output: none, always or auto"
	copyFlagDescription      = "copy the rendered tree to the clipboard"
	configFlagDescription    = "path to an explicit configuration file"
	versionFlagDescription   = "display application version"

	// directoryWalkUnsupportedMessage reports the unimplemented no-input mode.
	directoryWalkUnsupportedMessage = "walking the directory tree is not currently supported, please use -i and pipe in input from find"
	// clipboardCopyFailedFormat reports a clipboard write failure.
	clipboardCopyFailedFormat = "copy to clipboard: %w"
)

// clipboardCopier is the clipboard sink used for the copy flag; tests may replace it.
var clipboardCopier clipboard.Copier = clipboard.NewService()

// isStandardOutputTerminal reports whether stdout is attached to a terminal;
// tests may replace it.
var isStandardOutputTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// rootOptions stores the flag values of the root command.
type rootOptions struct {
	inputModeLiteral  string
	colorModeLiteral  string
	copyEnabled       bool
	configurationPath string
}

// Execute runs the stree application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeInputModeArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	options := &rootOptions{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runTree(command, options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.inputModeLiteral, inputModeFlagName, inputModeFlagShorthand, types.InputModeNoneLiteral, inputModeFlagDescription)
	if inputModeFlag := rootCommand.Flags().Lookup(inputModeFlagName); inputModeFlag != nil {
		inputModeFlag.NoOptDefVal = types.InputModeNormalLiteral
	}
	rootCommand.Flags().StringVarP(&options.colorModeLiteral, colorFlagName, colorFlagShorthand, types.ColorModeAlwaysLiteral, colorFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	return rootCommand
}

// runTree drives one invocation: resolve configuration, consume input lines
// into the trie, render, and report the summary.
func runTree(command *cobra.Command, options *rootOptions) error {
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configurationPath,
	})
	if configurationError != nil {
		return configurationError
	}

	inputModeLiteral := options.inputModeLiteral
	if !command.Flags().Changed(inputModeFlagName) && configuration.InputMode != "" {
		inputModeLiteral = configuration.InputMode
	}
	colorModeLiteral := options.colorModeLiteral
	if !command.Flags().Changed(colorFlagName) && configuration.Color != "" {
		colorModeLiteral = configuration.Color
	}
	copyEnabled := options.copyEnabled
	if !command.Flags().Changed(copyFlagName) && configuration.Copy != nil {
		copyEnabled = *configuration.Copy
	}

	parsingMode, parseModeError := types.ParseInputMode(inputModeLiteral)
	if parseModeError != nil {
		return parseModeError
	}
	colorMode, parseColorError := types.ParseColorMode(colorModeLiteral)
	if parseColorError != nil {
		return parseColorError
	}

	if parsingMode == types.ParsingModeNoInput {
		return errors.New(directoryWalkUnsupportedMessage)
	}

	colorEnabled := colorMode == types.ColorModeAlways ||
		(colorMode == types.ColorModeAuto && isStandardOutputTerminal())
	palette, paletteError := colors.Load(colorEnabled)
	if paletteError != nil {
		return paletteError
	}

	tree := trie.NewTree(parsingMode)
	signalContext, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()
	if consumeError := stream.Consume(signalContext, command.InOrStdin(), tree.AddLine); consumeError != nil {
		return consumeError
	}
	stopSignals()

	renderer := render.NewRenderer(parsingMode, palette)
	treeText := renderer.Render(tree)
	summaryText := renderer.Summary()

	outputWriter := command.OutOrStdout()
	fmt.Fprint(outputWriter, treeText)
	fmt.Fprintf(outputWriter, "\n%s\n", summaryText)

	if copyEnabled {
		if copyError := clipboardCopier.Copy(treeText + "\n" + summaryText + "\n"); copyError != nil {
			return fmt.Errorf(clipboardCopyFailedFormat, copyError)
		}
	}
	return nil
}

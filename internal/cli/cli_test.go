package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/stree/internal/trie"
)

// recordingCopier captures clipboard writes for assertions.
type recordingCopier struct {
	copiedText string
	copyError  error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copiedText = text
	return copier.copyError
}

// isolateEnvironment points HOME at an empty directory so user configuration
// never leaks into tests.
func isolateEnvironment(testingInstance *testing.T) {
	testingInstance.Helper()
	testingInstance.Setenv("HOME", testingInstance.TempDir())
}

// executeCommand runs the root command against the provided stdin and arguments.
func executeCommand(testingInstance *testing.T, input string, arguments ...string) (string, error) {
	testingInstance.Helper()
	command := createRootCommand()
	command.SetIn(strings.NewReader(input))
	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetArgs(arguments)
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

// TestNormalizeInputModeArguments verifies the space-separated mode value is
// rewritten into assignment form while everything else passes through.
func TestNormalizeInputModeArguments(testingInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{name: "empty", arguments: []string{}, expected: []string{}},
		{name: "short flag with value", arguments: []string{"-i", "grep"}, expected: []string{"--input-mode=grep"}},
		{name: "long flag with value", arguments: []string{"--input-mode", "n"}, expected: []string{"--input-mode=n"}},
		{name: "bare short flag", arguments: []string{"-i"}, expected: []string{"--input-mode"}},
		{
			name:      "bare flag before another flag",
			arguments: []string{"-i", "--color=none"},
			expected:  []string{"--input-mode", "--color=none"},
		},
		{
			name:      "unknown value stays positional",
			arguments: []string{"-i", "walk"},
			expected:  []string{"--input-mode", "walk"},
		},
		{
			name:      "double dash stops rewriting",
			arguments: []string{"--", "-i", "grep"},
			expected:  []string{"--", "-i", "grep"},
		},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subtest *testing.T) {
			actual := normalizeInputModeArguments(testCase.arguments)
			if !reflect.DeepEqual(actual, testCase.expected) {
				subtest.Errorf("normalized %v, expected %v", actual, testCase.expected)
			}
		})
	}
}

// normalRunExpected is the uncolored end-to-end output for a/b and a/c.
const normalRunExpected = "a\n" +
	"├── b\n" +
	"└── c\n" +
	"\n" +
	"1 directory, 2 files\n"

// TestExecuteNormalMode verifies the full pipeline from stdin to rendered output.
func TestExecuteNormalMode(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	output, executionError := executeCommand(testingInstance, "a/b\na/c\n", "--input-mode=normal", "--color=none")
	if executionError != nil {
		testingInstance.Fatalf("unexpected error: %v", executionError)
	}
	if output != normalRunExpected {
		testingInstance.Errorf("unexpected output:\n%q\nexpected:\n%q", output, normalRunExpected)
	}
}

// grepRunExpected is the uncolored end-to-end output for grep input with a
// repeated match and a binary notice.
const grepRunExpected = "[BIN] lib.a\n" +
	"src\n" +
	"└── [2] main.go\n" +
	"\n" +
	"1 directory, 2 files\n"

// TestExecuteGrepMode verifies grep annotations survive the full pipeline.
func TestExecuteGrepMode(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	input := "src/main.go:func main() {\n" +
		"src/main.go:}\n" +
		"Binary file lib.a matches\n"
	output, executionError := executeCommand(testingInstance, input, "--input-mode=grep", "--color=none")
	if executionError != nil {
		testingInstance.Fatalf("unexpected error: %v", executionError)
	}
	if output != grepRunExpected {
		testingInstance.Errorf("unexpected output:\n%q\nexpected:\n%q", output, grepRunExpected)
	}
}

// TestExecuteGrepModeMalformedLine verifies a malformed grep line aborts the
// run before anything is rendered.
func TestExecuteGrepModeMalformedLine(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	output, executionError := executeCommand(testingInstance, "malformed-line-no-colon\n", "--input-mode=grep", "--color=none")
	if executionError == nil {
		testingInstance.Fatal("expected an error for malformed grep input")
	}
	var parseError *trie.UnknownGrepLineError
	if !errors.As(executionError, &parseError) {
		testingInstance.Fatalf("expected UnknownGrepLineError, got %T", executionError)
	}
	if output != "" {
		testingInstance.Errorf("expected no rendered output, got %q", output)
	}
}

// TestExecuteDefaultModeIsUnsupported verifies the absent-flag default reports
// the directory-walk capability gap.
func TestExecuteDefaultModeIsUnsupported(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	_, executionError := executeCommand(testingInstance, "", "--color=none")
	if executionError == nil {
		testingInstance.Fatal("expected an error for the default none mode")
	}
	if executionError.Error() != directoryWalkUnsupportedMessage {
		testingInstance.Errorf("error = %q, expected %q", executionError.Error(), directoryWalkUnsupportedMessage)
	}
}

// TestExecuteMalformedColorVariable verifies a malformed color entry aborts
// before input is processed.
func TestExecuteMalformedColorVariable(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	testingInstance.Setenv("LS_COLORS", "")
	testingInstance.Setenv("TREE_COLORS", "entry-without-assignment")
	output, executionError := executeCommand(testingInstance, "a\n", "--input-mode=normal", "--color=always")
	if executionError == nil {
		testingInstance.Fatal("expected an error for a malformed color entry")
	}
	if output != "" {
		testingInstance.Errorf("expected no rendered output, got %q", output)
	}
}

// TestExecuteConfigurationProvidesDefaults verifies a configuration file can
// supply the input mode without any flag.
func TestExecuteConfigurationProvidesDefaults(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	configurationPath := filepath.Join(testingInstance.TempDir(), "stree.yaml")
	if writeError := os.WriteFile(configurationPath, []byte("input_mode: normal\ncolor: none\n"), 0o600); writeError != nil {
		testingInstance.Fatalf("write configuration: %v", writeError)
	}
	output, executionError := executeCommand(testingInstance, "x\n", "--config="+configurationPath)
	if executionError != nil {
		testingInstance.Fatalf("unexpected error: %v", executionError)
	}
	if expected := "x\n\n0 directories, 1 file\n"; output != expected {
		testingInstance.Errorf("unexpected output:\n%q\nexpected:\n%q", output, expected)
	}
}

// TestExecuteFlagOverridesConfiguration verifies explicit flags beat file values.
func TestExecuteFlagOverridesConfiguration(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	configurationPath := filepath.Join(testingInstance.TempDir(), "stree.yaml")
	if writeError := os.WriteFile(configurationPath, []byte("input_mode: none\ncolor: none\n"), 0o600); writeError != nil {
		testingInstance.Fatalf("write configuration: %v", writeError)
	}
	_, executionError := executeCommand(testingInstance, "x\n", "--config="+configurationPath, "--input-mode=normal")
	if executionError != nil {
		testingInstance.Fatalf("unexpected error: %v", executionError)
	}
}

// TestExecuteCopyFlagWritesClipboard verifies the copy flag mirrors the full
// printed output to the clipboard.
func TestExecuteCopyFlagWritesClipboard(testingInstance *testing.T) {
	isolateEnvironment(testingInstance)
	fakeCopier := &recordingCopier{}
	previousCopier := clipboardCopier
	clipboardCopier = fakeCopier
	testingInstance.Cleanup(func() { clipboardCopier = previousCopier })

	output, executionError := executeCommand(testingInstance, "a/b\na/c\n", "--input-mode=normal", "--color=none", "--copy")
	if executionError != nil {
		testingInstance.Fatalf("unexpected error: %v", executionError)
	}
	if fakeCopier.copiedText != output {
		testingInstance.Errorf("clipboard text %q differs from printed output %q", fakeCopier.copiedText, output)
	}
}

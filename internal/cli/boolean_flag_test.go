package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "keeps_true_default", defaultValue: true, arguments: []string{}, expected: true},
		{name: "sets_true_without_value", defaultValue: false, arguments: []string{"--copy"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--copy=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--copy", "no"}, expected: false},
		{name: "sets_true_with_on_literal", defaultValue: false, arguments: []string{"--copy", "on"}, expected: true},
		{name: "rejects_invalid_equals_value", defaultValue: false, arguments: []string{"--copy=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, copyFlagName, testCase.defaultValue, copyFlagDescription)
			parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsLeavesPositionalFiles(t *testing.T) {
	rootCommand := createRootCommand(dependencies{})
	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "joins_literal",
			arguments: []string{"pack", "--copy", "no", "x.gd"},
			expected:  []string{"pack", "--copy=no", "x.gd"},
		},
		{
			name:      "keeps_file_after_flag",
			arguments: []string{"pack", "--tokens", "x.gd"},
			expected:  []string{"pack", "--tokens", "x.gd"},
		},
		{
			name:      "ignores_string_flags",
			arguments: []string{"pack", "--task", "yes", "x.gd"},
			expected:  []string{"pack", "--task", "yes", "x.gd"},
		},
		{
			name:      "stops_at_terminator",
			arguments: []string{"pack", "--", "--strict", "no"},
			expected:  []string{"pack", "--", "--strict", "no"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			normalized := normalizeBooleanFlagArguments(rootCommand, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/promptpack/internal/utils"
)

type configTestCase struct {
	name             string
	globalContent    string
	localContent     string
	explicitPath     string
	explicitContent  string
	expectRoot       string
	expectSubject    string
	expectSkip       []string
	expectExtensions []string
	expectCopy       bool
	expectStrict     bool
	expectTokens     bool
	expectModel      string
	expectTasksDir   string
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:             "defaults_without_files",
			expectRoot:       DefaultTreeRoot,
			expectSubject:    DefaultPromptSubject,
			expectSkip:       DefaultSkipDirectories(),
			expectExtensions: DefaultTreeExtensions(),
			expectCopy:       true,
			expectModel:      DefaultTokenModel,
			expectTasksDir:   DefaultTasksDirectory,
		},
		{
			name:             "local_overrides_global",
			globalContent:    "copy: false\nprompt:\n  subject: a space shooter\ntokens:\n  enabled: true\n  model: gpt-4\n",
			localContent:     "copy: true\ntree:\n  root: game\n  extensions: [gd, .cs, gd]\n",
			expectRoot:       "game",
			expectSubject:    "a space shooter",
			expectSkip:       DefaultSkipDirectories(),
			expectExtensions: []string{".gd", ".cs"},
			expectCopy:       true,
			expectTokens:     true,
			expectModel:      "gpt-4",
			expectTasksDir:   DefaultTasksDirectory,
		},
		{
			name:             "explicit_path_replaces_local",
			localContent:     "strict: false\n",
			explicitPath:     "custom.yaml",
			explicitContent:  "strict: true\ntasks:\n  directory: prompts\ntree:\n  skip: [vendor, vendor, build]\n",
			expectRoot:       DefaultTreeRoot,
			expectSubject:    DefaultPromptSubject,
			expectSkip:       []string{"vendor", "build"},
			expectExtensions: DefaultTreeExtensions(),
			expectCopy:       true,
			expectStrict:     true,
			expectModel:      DefaultTokenModel,
			expectTasksDir:   "prompts",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			if loadedConfig.Tree.Root != testCase.expectRoot {
				t.Fatalf("expected root %q, got %q", testCase.expectRoot, loadedConfig.Tree.Root)
			}
			if loadedConfig.Prompt.Subject != testCase.expectSubject {
				t.Fatalf("expected subject %q, got %q", testCase.expectSubject, loadedConfig.Prompt.Subject)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.Skip, testCase.expectSkip) {
				t.Fatalf("expected skip %v, got %v", testCase.expectSkip, loadedConfig.Tree.Skip)
			}
			if !reflect.DeepEqual(loadedConfig.Tree.Extensions, testCase.expectExtensions) {
				t.Fatalf("expected extensions %v, got %v", testCase.expectExtensions, loadedConfig.Tree.Extensions)
			}
			if loadedConfig.CopyEnabled() != testCase.expectCopy {
				t.Fatalf("expected copy %t, got %t", testCase.expectCopy, loadedConfig.CopyEnabled())
			}
			if loadedConfig.StrictEnabled() != testCase.expectStrict {
				t.Fatalf("expected strict %t, got %t", testCase.expectStrict, loadedConfig.StrictEnabled())
			}
			if loadedConfig.TokensEnabled() != testCase.expectTokens {
				t.Fatalf("expected tokens %t, got %t", testCase.expectTokens, loadedConfig.TokensEnabled())
			}
			if loadedConfig.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Tokens.Model)
			}
			if loadedConfig.Tasks.Directory != testCase.expectTasksDir {
				t.Fatalf("expected tasks directory %q, got %q", testCase.expectTasksDir, loadedConfig.Tasks.Directory)
			}
		})
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
	if err := os.WriteFile(localPath, []byte("tree: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestMergeKeepsReceiverValuesForEmptyOverride(t *testing.T) {
	base := DefaultApplicationConfiguration()
	merged := base.Merge(ApplicationConfiguration{})
	if !reflect.DeepEqual(base, merged) {
		t.Fatalf("expected empty override to keep defaults, got %+v", merged)
	}
}

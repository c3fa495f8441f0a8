// Package config loads promptpack configuration and named-task artifacts.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/promptpack/internal/utils"
)

const (
	// DefaultTreeRoot is the directory rendered when no root is configured.
	DefaultTreeRoot = "."
	// DefaultTreeTitle heads the rendered project structure.
	DefaultTreeTitle = "Project Structure:"
	// DefaultPromptSubject completes the preamble sentence describing the attached context.
	DefaultPromptSubject = "a godot card stack game"
	// DefaultTaskPlaceholder is emitted when no task description is supplied.
	DefaultTaskPlaceholder = "[USER TASK HERE]"
	// DefaultTokenModel names the tokenizer model used by --tokens.
	DefaultTokenModel = "gpt-4o"
)

// DefaultSkipDirectories lists directory names never descended into while rendering the tree.
func DefaultSkipDirectories() []string {
	return []string{utils.GitDirectoryName, ".vscode", ".godot", "addons", "scripts"}
}

// DefaultTreeExtensions lists the file extensions shown in the rendered tree.
func DefaultTreeExtensions() []string {
	return []string{".tscn", ".gd", ".json"}
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the settings shared by the pack and task commands.
type ApplicationConfiguration struct {
	Tree   TreeConfiguration   `mapstructure:"tree"`
	Prompt PromptConfiguration `mapstructure:"prompt"`
	Tasks  TasksConfiguration  `mapstructure:"tasks"`
	Tokens TokenConfiguration  `mapstructure:"tokens"`
	Copy   *bool               `mapstructure:"copy"`
	Strict *bool               `mapstructure:"strict"`
}

// TreeConfiguration controls the rendered project structure.
type TreeConfiguration struct {
	Root       string   `mapstructure:"root"`
	Title      string   `mapstructure:"title"`
	Skip       []string `mapstructure:"skip"`
	Extensions []string `mapstructure:"extensions"`
}

// PromptConfiguration controls the fixed text surrounding the embedded documents.
type PromptConfiguration struct {
	Subject     string `mapstructure:"subject"`
	Placeholder string `mapstructure:"placeholder"`
}

// TasksConfiguration locates named-task artifacts.
type TasksConfiguration struct {
	Directory string `mapstructure:"directory"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// DefaultApplicationConfiguration returns the built-in settings every loaded configuration is layered on.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	copyEnabled := true
	strictDisabled := false
	tokensDisabled := false
	return ApplicationConfiguration{
		Tree: TreeConfiguration{
			Root:       DefaultTreeRoot,
			Title:      DefaultTreeTitle,
			Skip:       DefaultSkipDirectories(),
			Extensions: DefaultTreeExtensions(),
		},
		Prompt: PromptConfiguration{
			Subject:     DefaultPromptSubject,
			Placeholder: DefaultTaskPlaceholder,
		},
		Tasks:  TasksConfiguration{Directory: DefaultTasksDirectory},
		Tokens: TokenConfiguration{Enabled: &tokensDisabled, Model: DefaultTokenModel},
		Copy:   &copyEnabled,
		Strict: &strictDisabled,
	}
}

// LoadApplicationConfiguration layers the global and local configuration files over the defaults.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	merged := DefaultApplicationConfiguration()

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Skip = utils.DeduplicateStrings(merged.Tree.Skip)
	merged.Tree.Extensions = utils.NormalizeExtensions(merged.Tree.Extensions)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName)
}

// loadConfigurationFromPath reads one configuration file. A missing file yields an empty
// configuration unless required is set.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
// Empty strings, empty lists, and nil booleans in override leave the receiver's values in place.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	result.Prompt = result.Prompt.merge(override.Prompt)
	if override.Tasks.Directory != "" {
		result.Tasks.Directory = override.Tasks.Directory
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Strict != nil {
		result.Strict = cloneBool(override.Strict)
	}
	return result
}

// CopyEnabled reports whether the prompt should be delivered through the clipboard.
func (config ApplicationConfiguration) CopyEnabled() bool {
	return config.Copy == nil || *config.Copy
}

// StrictEnabled reports whether a failed document aborts assembly.
func (config ApplicationConfiguration) StrictEnabled() bool {
	return config.Strict != nil && *config.Strict
}

// TokensEnabled reports whether the prompt's token count should be reported.
func (config ApplicationConfiguration) TokensEnabled() bool {
	return config.Tokens.Enabled != nil && *config.Tokens.Enabled
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if len(override.Skip) > 0 {
		result.Skip = append([]string{}, override.Skip...)
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, override.Extensions...)
	}
	return result
}

func (config PromptConfiguration) merge(override PromptConfiguration) PromptConfiguration {
	result := config
	if override.Subject != "" {
		result.Subject = override.Subject
	}
	if override.Placeholder != "" {
		result.Placeholder = override.Placeholder
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// DefaultTasksDirectory holds named-task artifacts relative to the working directory.
	DefaultTasksDirectory = "scripts"
	// TaskArtifactExtension is appended to a task identifier to name its artifact.
	TaskArtifactExtension = ".json"

	taskFilesKey = "files"
	taskTextKey  = "task"
)

// ErrEmptyTaskIdentifier is returned when a named task is requested without a name.
var ErrEmptyTaskIdentifier = errors.New("task identifier is empty")

// TaskArtifact declares which files to include and what to ask.
type TaskArtifact struct {
	Files []string `mapstructure:"files"`
	Task  string   `mapstructure:"task"`
}

// ResolveTaskArtifactPath joins the tasks directory with identifier plus the artifact extension.
func ResolveTaskArtifactPath(tasksDirectory string, identifier string) (string, error) {
	trimmedIdentifier := strings.TrimSpace(identifier)
	if trimmedIdentifier == "" {
		return "", ErrEmptyTaskIdentifier
	}
	if tasksDirectory == "" {
		tasksDirectory = DefaultTasksDirectory
	}
	return filepath.Join(tasksDirectory, trimmedIdentifier+TaskArtifactExtension), nil
}

// strictTaskDecoding rejects values whose type does not match TaskArtifact instead of converting them.
func strictTaskDecoding(decoderConfig *mapstructure.DecoderConfig) {
	decoderConfig.WeaklyTypedInput = false
	decoderConfig.DecodeHook = nil
}

// LoadTaskArtifact reads a task artifact. Missing keys default to an empty file list and an empty task.
// A missing or malformed artifact, or a field of the wrong type, is an error.
// Keys match case-insensitively.
func LoadTaskArtifact(path string) (TaskArtifact, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return TaskArtifact{}, fmt.Errorf("locate task configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return TaskArtifact{}, fmt.Errorf("task configuration %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetDefault(taskFilesKey, []string{})
	reader.SetDefault(taskTextKey, "")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return TaskArtifact{}, fmt.Errorf("parse task configuration %s: %w", path, readErr)
	}
	var artifact TaskArtifact
	if decodeErr := reader.Unmarshal(&artifact, viper.DecoderConfigOption(strictTaskDecoding)); decodeErr != nil {
		return TaskArtifact{}, fmt.Errorf("decode task configuration %s: %w", path, decodeErr)
	}
	if artifact.Files == nil {
		artifact.Files = []string{}
	}
	return artifact, nil
}

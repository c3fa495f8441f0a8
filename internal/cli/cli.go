// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/promptpack/internal/commands"
	"github.com/temirov/promptpack/internal/config"
	"github.com/temirov/promptpack/internal/services/clipboard"
	"github.com/temirov/promptpack/internal/tokenizer"
	"github.com/temirov/promptpack/internal/utils"
)

const (
	configFlagName  = "config"
	rootFlagName    = "root"
	copyFlagName    = "copy"
	tokensFlagName  = "tokens"
	modelFlagName   = "model"
	strictFlagName  = "strict"
	verboseFlagName = "verbose"
	versionFlagName = "version"
	taskFlagName    = "task"
	taskFlagShort   = "t"
	globalFlagName  = "global"
	forceFlagName   = "force"

	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "pack project files into an LLM prompt"
	rootLongDescription  = `promptpack combines a filtered project tree, the contents of selected files,
and a task instruction into one prompt, then copies it to the clipboard.
Use pack to list files directly or task to load a saved selection from scripts/<name>.json.`

	packUse              = "pack <files...>"
	packAlias            = "p"
	packShortDescription = "assemble a prompt from the listed files (" + packAlias + ")"
	packLongDescription  = `Assemble a prompt from the listed files in the given order.
Missing or unreadable files are reported and skipped.`
	packUsageExample = `  # Ask about two scripts
  promptpack pack player.gd enemy.gd -t "extract a shared health component"

  # Let the shell expand a glob and print instead of copying
  promptpack pack scenes/*.gd --copy=false`

	taskUse              = "task <name>"
	taskAlias            = "pg"
	taskShortDescription = "assemble a prompt from a saved task file (" + taskAlias + ")"
	taskLongDescription  = `Load <tasks directory>/<name>.json, which lists "files" and a "task" description,
and assemble the same prompt pack would produce for them.`
	taskUsageExample = `  # scripts/refactor.json: {"files": ["player.gd"], "task": "split input handling"}
  promptpack task refactor`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./` + utils.LocalConfigFileName + ` or, with --global,
to ~/` + utils.GlobalConfigDirectoryName + `/` + utils.GlobalConfigFileName + `.`

	configFlagDescription  = "configuration file to use instead of ./" + utils.LocalConfigFileName
	rootFlagDescription    = "directory rendered as the project tree"
	copyFlagDescription    = "copy the prompt to the clipboard; when false the prompt is printed"
	tokensFlagDescription  = "report the token count of the prompt"
	modelFlagDescription   = "tokenizer model to use for token counting"
	strictFlagDescription  = "abort when any listed file is missing or unreadable"
	verboseFlagDescription = "log diagnostics to stderr"
	versionFlagDescription = "display application version"
	taskFlagDescription    = "task instructions appended to the prompt"
	globalFlagDescription  = "write the global configuration instead of the local one"
	forceFlagDescription   = "overwrite an existing configuration file"

	initWrittenFormat = "Configuration written to %s\n"

	// packCommandName and taskCommandName label prompt runs in debug logs.
	packCommandName = "pack"
	taskCommandName = "task"
)

// applicationOptions stores the values of the persistent flags.
type applicationOptions struct {
	configurationPath string
	root              string
	copyEnabled       bool
	tokensEnabled     bool
	tokenModel        string
	strict            bool
	verbose           bool
	showVersion       bool
}

// dependencies are the collaborators a command run needs from the outside world.
type dependencies struct {
	copier     clipboard.Copier
	logger     *zap.Logger
	level      *zap.AtomicLevel
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
}

// Execute runs the promptpack application.
func Execute(logger *zap.Logger, level *zap.AtomicLevel) error {
	rootCommand := createRootCommand(dependencies{
		copier:     clipboard.NewService(),
		logger:     logger,
		level:      level,
		newCounter: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	if deps.logger == nil {
		deps.logger = zap.NewNop()
	}
	var options applicationOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
			if options.verbose && deps.level != nil {
				deps.level.SetLevel(zapcore.DebugLevel)
			}
		},
	}

	flagSet := rootCommand.PersistentFlags()
	flagSet.StringVar(&options.configurationPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.root, rootFlagName, config.DefaultTreeRoot, rootFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, config.DefaultTokenModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &options.copyEnabled, copyFlagName, true, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	registerBooleanFlag(flagSet, &options.strict, strictFlagName, false, strictFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(
		createPackCommand(&options, deps),
		createTaskCommand(&options, deps),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createPackCommand returns the direct-mode subcommand.
func createPackCommand(options *applicationOptions, deps dependencies) *cobra.Command {
	var task string

	packCommand := &cobra.Command{
		Use:     packUse,
		Aliases: []string{packAlias},
		Short:   packShortDescription,
		Long:    packLongDescription,
		Example: packUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, options)
			if settingsError != nil {
				return settingsError
			}
			return runPrompt(command.OutOrStdout(), settings, deps, promptRequest{
				command:       packCommandName,
				paths:         arguments,
				task:          task,
				showStructure: true,
			})
		},
	}
	packCommand.Flags().StringVarP(&task, taskFlagName, taskFlagShort, "", taskFlagDescription)
	return packCommand
}

// createTaskCommand returns the named-task subcommand.
func createTaskCommand(options *applicationOptions, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     taskUse,
		Aliases: []string{taskAlias},
		Short:   taskShortDescription,
		Long:    taskLongDescription,
		Example: taskUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, settingsError := resolveSettings(command, options)
			if settingsError != nil {
				return settingsError
			}
			artifactPath, resolveError := config.ResolveTaskArtifactPath(settings.Tasks.Directory, arguments[0])
			if resolveError != nil {
				return resolveError
			}
			artifact, loadError := config.LoadTaskArtifact(artifactPath)
			if loadError != nil {
				return loadError
			}
			deps.logger.Debug("loaded task configuration", zap.String("path", artifactPath), zap.Int("files", len(artifact.Files)))
			return runPrompt(command.OutOrStdout(), settings, deps, promptRequest{
				command: taskCommandName,
				paths:   artifact.Files,
				task:    artifact.Task,
			})
		},
	}
}

// createInitCommand returns the subcommand writing a default configuration file.
func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initWrittenFormat, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveSettings loads the configuration files and overlays the flags the user set explicitly.
func resolveSettings(command *cobra.Command, options *applicationOptions) (config.ApplicationConfiguration, error) {
	settings, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configurationPath})
	if loadError != nil {
		return config.ApplicationConfiguration{}, loadError
	}
	flags := command.Flags()
	if flags.Changed(rootFlagName) {
		settings.Tree.Root = options.root
	}
	if flags.Changed(copyFlagName) {
		copyEnabled := options.copyEnabled
		settings.Copy = &copyEnabled
	}
	if flags.Changed(tokensFlagName) {
		tokensEnabled := options.tokensEnabled
		settings.Tokens.Enabled = &tokensEnabled
	}
	if flags.Changed(modelFlagName) {
		settings.Tokens.Model = options.tokenModel
	}
	if flags.Changed(strictFlagName) {
		strict := options.strict
		settings.Strict = &strict
	}
	return settings, nil
}

// newAssembler builds the prompt assembler described by settings.
func newAssembler(settings config.ApplicationConfiguration, logger *zap.Logger) commands.PromptAssembler {
	policy := commands.FailurePolicyContinue
	if settings.StrictEnabled() {
		policy = commands.FailurePolicyAbort
	}
	return commands.PromptAssembler{
		Tree: commands.TreeRenderer{
			Title:           settings.Tree.Title,
			SkipDirectories: settings.Tree.Skip,
			Extensions:      settings.Tree.Extensions,
		},
		Root:        settings.Tree.Root,
		Subject:     settings.Prompt.Subject,
		Placeholder: settings.Prompt.Placeholder,
		Policy:      policy,
		Logger:      logger,
	}
}

// promptRequest is what one pack or task invocation asks for.
type promptRequest struct {
	command       string
	paths         []string
	task          string
	showStructure bool
}

// runPrompt assembles the prompt, reports skipped documents, and delivers the result.
func runPrompt(stdout io.Writer, settings config.ApplicationConfiguration, deps dependencies, request promptRequest) error {
	deps.logger.Debug("assembling prompt", zap.String("command", request.command), zap.Strings("paths", request.paths))
	prompt, assembleError := newAssembler(settings, deps.logger).Assemble(request.paths, request.task)
	reportFailedDocuments(stdout, prompt.Failed())
	if assembleError != nil {
		return assembleError
	}
	deliverPrompt(stdout, deps.copier, prompt.Text, settings.CopyEnabled(), request.showStructure)
	if settings.TokensEnabled() {
		reportTokens(stdout, deps, settings.Tokens.Model, prompt.Text)
	}
	return nil
}

package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Application level constants shared across packages.
const (
	// ApplicationName is the binary name used in help output and version strings.
	ApplicationName = "promptpack"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".promptpack"
	// GlobalConfigFileName is the global configuration file name.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the per-project configuration file name.
	LocalConfigFileName = ".promptpack.yaml"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal execution errors.
	ApplicationExecutionFailedMessage = "promptpack failed"
)

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/promptpack/internal/cli"
	"github.com/temirov/promptpack/internal/utils"
)

// main is the entry point for the promptpack command.
func main() {
	loggerLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(loggerLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance, &loggerLevel); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}

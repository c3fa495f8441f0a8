package cli

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/promptpack/internal/services/clipboard"
	"github.com/temirov/promptpack/internal/tokenizer"
	"github.com/temirov/promptpack/internal/types"
	"github.com/temirov/promptpack/internal/utils"
)

const (
	missingDocumentFormat    = "Warning: %s not found.\n"
	unreadableDocumentFormat = "Error reading %s: %v\n"
	copySucceededFormat      = "✅ Success! %d chars copied to clipboard.\n"
	structureSummaryLine     = "Structure: File Tree -> <code_context> -> Task"
	copyFailedFormat         = "Generated text (copy failed: %v):\n%s\n"
	tokenReportFormat        = "Tokens: %d (%s)\n"
	tokenSkippedMessage      = "token count skipped"
)

var errNoClipboard = errors.New("clipboard unavailable")

// reportFailedDocuments prints one line per document that was left out of the prompt.
func reportFailedDocuments(stdout io.Writer, failed []types.Document) {
	for _, document := range failed {
		if document.Missing() {
			fmt.Fprintf(stdout, missingDocumentFormat, document.Path)
			continue
		}
		fmt.Fprintf(stdout, unreadableDocumentFormat, document.Path, document.Err)
	}
}

// deliverPrompt copies text to the clipboard and confirms the character count.
// When copying fails the full text is printed so the operator still has it;
// with copying disabled the text is printed as is.
func deliverPrompt(stdout io.Writer, copier clipboard.Copier, text string, copyEnabled bool, showStructure bool) {
	if !copyEnabled {
		fmt.Fprintln(stdout, text)
		return
	}
	copyError := errNoClipboard
	if copier != nil {
		copyError = copier.Copy(text)
	}
	if copyError != nil {
		fmt.Fprintf(stdout, copyFailedFormat, copyError, text)
		return
	}
	fmt.Fprintf(stdout, copySucceededFormat, utils.CountCharacters(text))
	if showStructure {
		fmt.Fprintln(stdout, structureSummaryLine)
	}
}

// reportTokens prints the prompt's token count. Tokenizer failures are logged and do not fail the run.
func reportTokens(stdout io.Writer, deps dependencies, model string, text string) {
	if deps.newCounter == nil {
		deps.logger.Warn(tokenSkippedMessage, zap.String("reason", "no tokenizer configured"))
		return
	}
	counter, resolvedModel, counterError := deps.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		deps.logger.Warn(tokenSkippedMessage, zap.String("model", model), zap.Error(counterError))
		return
	}
	result, countError := tokenizer.CountText(counter, resolvedModel, text)
	if countError != nil {
		deps.logger.Warn(tokenSkippedMessage, zap.String("model", resolvedModel), zap.Error(countError))
		return
	}
	if !result.Counted {
		deps.logger.Warn(tokenSkippedMessage, zap.String("model", resolvedModel), zap.String("reason", "prompt is not valid UTF-8"))
		return
	}
	fmt.Fprintf(stdout, tokenReportFormat, result.Tokens, result.Model)
}

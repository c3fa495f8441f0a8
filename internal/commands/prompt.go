package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/promptpack/internal/types"
)

// FailurePolicy decides what a failed document does to assembly.
type FailurePolicy int

const (
	// FailurePolicyContinue omits failed documents and keeps assembling.
	FailurePolicyContinue FailurePolicy = iota
	// FailurePolicyAbort stops assembly at the first failed document.
	FailurePolicyAbort
)

const (
	preambleFormat        = "I am providing you with the context of %s."
	preambleDetailLine    = "Below is the file structure and the content of selected source files.\n"
	treeSeparatorLine     = "\n---\n"
	contextOpenMarker     = "<code_context>"
	contextCloseMarker    = "</code_context>\n"
	documentOpenFormat    = `<document path="%s">`
	documentCloseMarker   = "</document>\n"
	taskInstructionLine   = "Based on the context above, please perform the following task:"
	promptLineSeparator   = "\n"
	defaultSubject        = "a godot card stack game"
	defaultPlaceholder    = "[USER TASK HERE]"
	defaultTreeRoot       = "."
	errorDocumentFormat   = "reading document %s: %w"
	errorRenderTreeFormat = "rendering tree for %s: %w"
)

// Prompt is an assembled prompt together with the outcome for every requested document.
type Prompt struct {
	Text      string
	Documents []types.Document
}

// Failed returns the documents that could not be embedded, in request order.
func (prompt Prompt) Failed() []types.Document {
	var failed []types.Document
	for _, document := range prompt.Documents {
		if !document.Succeeded() {
			failed = append(failed, document)
		}
	}
	return failed
}

// PromptAssembler combines the rendered tree, document contents, and a task instruction.
type PromptAssembler struct {
	Tree        TreeRenderer
	Root        string
	Subject     string
	Placeholder string
	Policy      FailurePolicy
	Logger      *zap.Logger
}

// Assemble builds the prompt for paths and task. Document blocks follow the order of paths.
// An empty task is replaced with the placeholder.
func (assembler PromptAssembler) Assemble(paths []string, task string) (Prompt, error) {
	logger := assembler.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	root := assembler.Root
	if root == "" {
		root = defaultTreeRoot
	}
	renderedTree, treeError := assembler.Tree.Render(root)
	if treeError != nil {
		return Prompt{}, fmt.Errorf(errorRenderTreeFormat, root, treeError)
	}
	logger.Debug("rendered project tree", zap.String("root", root), zap.Int("lines", strings.Count(renderedTree, promptLineSeparator)))

	documents := CollectDocuments(paths)
	for _, document := range documents {
		if document.Succeeded() {
			logger.Debug("embedding document", zap.String("path", document.Path), zap.Int("bytes", len(document.Content)))
			continue
		}
		logger.Debug("skipping document", zap.String("path", document.Path), zap.Error(document.Err))
		if assembler.Policy == FailurePolicyAbort {
			return Prompt{Documents: documents}, fmt.Errorf(errorDocumentFormat, document.Path, document.Err)
		}
	}

	return Prompt{
		Text:      assembler.format(renderedTree, documents, task),
		Documents: documents,
	}, nil
}

func (assembler PromptAssembler) format(renderedTree string, documents []types.Document, task string) string {
	subject := assembler.Subject
	if subject == "" {
		subject = defaultSubject
	}
	placeholder := assembler.Placeholder
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}

	lines := []string{
		fmt.Sprintf(preambleFormat, subject),
		preambleDetailLine,
		renderedTree,
		treeSeparatorLine,
		contextOpenMarker,
	}
	for _, document := range documents {
		if !document.Succeeded() {
			continue
		}
		lines = append(lines,
			fmt.Sprintf(documentOpenFormat, document.Path),
			document.Content,
			documentCloseMarker,
		)
	}
	lines = append(lines, contextCloseMarker, taskInstructionLine)
	if task != "" {
		lines = append(lines, task)
	} else {
		lines = append(lines, placeholder)
	}
	return strings.Join(lines, promptLineSeparator)
}

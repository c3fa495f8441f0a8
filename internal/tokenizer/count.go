package tokenizer

import (
	"errors"
	"unicode/utf8"
)

// CountResult captures the outcome of counting a text.
type CountResult struct {
	Tokens  int
	Model   string
	Counted bool
}

// CountText estimates tokens for text using counter. Text that is not valid UTF-8 is not counted.
func CountText(counter Counter, model string, text string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if !utf8.ValidString(text) {
		return CountResult{Model: model, Counted: false}, nil
	}
	tokens, err := counter.CountString(text)
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Model: model, Counted: true}, nil
}

package tokenizer

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

var errEncodingUnavailable = errors.New("tiktoken encoding not initialized")

// openAICounter counts tokens with a tiktoken BPE encoding resolved for a model.
type openAICounter struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
}

func (counter openAICounter) Name() string {
	return counter.encodingName
}

// CountString encodes input without special-token handling and returns the number of token ids.
func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("count tokens with %q: %w", counter.encodingName, errEncodingUnavailable)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

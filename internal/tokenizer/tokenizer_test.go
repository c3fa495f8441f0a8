package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountTextCountsValidText(t *testing.T) {
	result, err := CountText(testCounter{}, "stub-model", "hello")
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if !result.Counted {
		t.Fatalf("expected counted result")
	}
	if result.Tokens != len([]rune("hello")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("hello")), result.Tokens)
	}
	if result.Model != "stub-model" {
		t.Fatalf("expected model stub-model, got %q", result.Model)
	}
}

func TestCountTextSkipsInvalidUTF8(t *testing.T) {
	result, err := CountText(testCounter{}, "stub-model", string([]byte{0xff, 0xfe}))
	if err != nil {
		t.Fatalf("CountText error: %v", err)
	}
	if result.Counted {
		t.Fatalf("expected invalid text to be skipped")
	}
}

func TestCountTextRejectsNilCounter(t *testing.T) {
	if _, err := CountText(nil, "", "hello"); err == nil {
		t.Fatalf("expected error for nil counter")
	}
}

func TestOpenAICounterWithoutEncodingFails(t *testing.T) {
	counter := openAICounter{encodingName: defaultEncodingName}
	if counter.Name() != defaultEncodingName {
		t.Fatalf("expected name %q, got %q", defaultEncodingName, counter.Name())
	}
	tokens, err := counter.CountString("hello")
	if !errors.Is(err, errEncodingUnavailable) {
		t.Fatalf("expected errEncodingUnavailable, got %v", err)
	}
	if tokens != 0 {
		t.Fatalf("expected zero tokens, got %d", tokens)
	}
}

func TestIsOpenAIModel(t *testing.T) {
	testCases := []struct {
		model    string
		expected bool
	}{
		{model: "gpt-4o", expected: true},
		{model: "text-embedding-3-small", expected: true},
		{model: "claude-3-5-sonnet", expected: false},
		{model: "llama-3", expected: false},
	}
	for _, testCase := range testCases {
		if result := isOpenAIModel(testCase.model); result != testCase.expected {
			t.Fatalf("expected %t for %s, got %t", testCase.expected, testCase.model, result)
		}
	}
}

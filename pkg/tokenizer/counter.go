// Package tokenizer estimates token counts for prompt and completion text.
// OpenAI-family models get exact tiktoken counts; everything else (the Llama
// models the default endpoint serves) uses character-based estimation.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// encodingForModel maps OpenAI model names to tiktoken encoding names.
var encodingForModel = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4o-mini":   "o200k_base",
	"o1":            "o200k_base",
	"o3-mini":       "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
}

// CountTokens returns the token count for text under the given model.
func CountTokens(text, model string) (int64, error) {
	encName, ok := encodingForModel[model]
	if !ok {
		return EstimateTokens(text), nil
	}

	var enc tokenizer.Codec
	var err error
	switch encName {
	case "o200k_base":
		enc, err = tokenizer.Get(tokenizer.O200kBase)
	case "cl100k_base":
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
	default:
		return EstimateTokens(text), nil
	}
	if err != nil {
		return 0, fmt.Errorf("load encoding %s: %w", encName, err)
	}

	ids, _, err := enc.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	return int64(len(ids)), nil
}

// EstimateTokens uses character-based estimation (4 chars per token on
// average), the fallback for models without a known tiktoken encoding.
func EstimateTokens(text string) int64 {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return 0
	}
	return int64((len(text) + 3) / 4) // ceiling division by 4
}

// CountPromptTokens counts tokens for a single-message chat prompt, adding
// the per-message formatting overhead and reply priming.
func CountPromptTokens(prompt, model string) (int64, error) {
	count, err := CountTokens(prompt, model)
	if err != nil {
		return 0, err
	}
	return count + 4 + 2, nil // message overhead + assistant priming
}

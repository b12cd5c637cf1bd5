// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// FieldExtractor implements ai.FieldExtractor using OpenAI-compatible chat APIs.
type FieldExtractor struct {
	client          llms.Model
	maxExcerptChars int
	logger          *slog.Logger
}

// newFieldExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
//
// Extraction deliberately shares ClassifierHost and ClassifierModel:
// classification and field extraction are the same kind of small structured
// completion, and one model serves both.
func newFieldExtractor(config *ai.Config) (*FieldExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &FieldExtractor{
		client:          client,
		maxExcerptChars: config.MaxExcerptChars,
		logger:          slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewFieldExtractor creates a new field extractor using the provided configuration.
//
// Returns ai.FieldExtractor interface to enforce abstraction.
func NewFieldExtractor(config *ai.Config) (ai.FieldExtractor, error) {
	return newFieldExtractor(config)
}

// ExtractFields asks the model for a flat key-value JSON object. Malformed
// output is treated as "no signal": the method returns an empty map rather
// than an error so a bad completion never fails ingestion.
func (e *FieldExtractor) ExtractFields(ctx context.Context, text string, fields []string, hint string) (map[string]any, error) {
	if len(fields) == 0 {
		return map[string]any{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractFieldsPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(formatExtractRequest(fields, hint, truncate(text, e.maxExcerptChars))),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return map[string]any{}, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	responseText = repairJSON(responseText)

	var result map[string]any
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		e.logger.Warn("discarding malformed extractor response",
			"response", responseText,
			"err", err)
		return map[string]any{}, nil
	}

	e.logger.Debug("extracted fields", "count", len(result))
	return result, nil
}

// stripCodeFences removes a surrounding markdown code fence, if any.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

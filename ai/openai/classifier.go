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
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/docsift/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// queryExcerptChars caps how much of a user query is sent to the router.
const queryExcerptChars = 2000

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client          llms.Model
	maxExcerptChars int
	logger          *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
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

	return &Classifier{
		client:          client,
		maxExcerptChars: config.MaxExcerptChars,
		logger:          slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// ClassifyDocument classifies a document excerpt into an existing collection,
// a suggested new collection name, or the unclassified sentinel.
func (c *Classifier) ClassifyDocument(ctx context.Context, excerpt string, existing []string) (string, error) {
	prompt := buildClassifyDocumentPrompt(ai.Unclassified)
	user := fmt.Sprintf("Existing collections: %s\n\nDocument excerpt:\n%s",
		formatCollections(existing), truncate(excerpt, c.maxExcerptChars))
	return c.complete(ctx, prompt, user)
}

// ClassifyQuery routes a user query to one of the existing collections or
// the unclassified sentinel.
func (c *Classifier) ClassifyQuery(ctx context.Context, query string, existing []string) (string, error) {
	prompt := buildClassifyQueryPrompt(ai.Unclassified)
	user := fmt.Sprintf("Existing collections: %s\n\nUser query: %s",
		formatCollections(existing), truncate(strings.TrimSpace(query), queryExcerptChars))
	return c.complete(ctx, prompt, user)
}

// complete sends one system+user exchange and returns the model's answer as a
// single trimmed line.
func (c *Classifier) complete(ctx context.Context, system, user string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(user),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return ai.Unclassified, nil
	}

	answer := strings.TrimSpace(response.Choices[0].Content)
	// Chatty models sometimes wrap the name in quotes or add trailing prose;
	// keep the first line only.
	if idx := strings.IndexByte(answer, '\n'); idx >= 0 {
		answer = strings.TrimSpace(answer[:idx])
	}
	answer = strings.Trim(answer, "\"'` .")

	c.logger.Debug("classifier answer", "answer", answer)
	return answer, nil
}

// truncate cuts s to at most n bytes, backing off to a rune boundary so
// the excerpt stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

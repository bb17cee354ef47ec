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
	"log/slog"
	"strings"

	"github.com/poiesic/statseek/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const rewriterSystemPrompt = `You reformulate questions about regional statistics into short search phrases.
Given a user question, reply with a single concise phrase naming the statistical
concepts the question is about. Keep the language of the question. Do not add
explanations, quotes, or punctuation around the phrase. If the question is
already a short search phrase, return it unchanged.`

// QueryRewriter implements ai.QueryRewriter using OpenAI-compatible chat APIs.
type QueryRewriter struct {
	client llms.Model
	logger *slog.Logger
}

// newQueryRewriter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryRewriter(config *ai.Config) (*QueryRewriter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.RewriterHost),
		openai.WithToken("none"),
		openai.WithModel(config.RewriterModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryRewriter{
		client: client,
		logger: slog.Default().With("component", "openai-rewriter"),
	}, nil
}

// NewQueryRewriter creates a new query rewriter using the provided configuration.
//
// Returns ai.QueryRewriter interface to enforce abstraction.
func NewQueryRewriter(config *ai.Config) (ai.QueryRewriter, error) {
	return newQueryRewriter(config)
}

// Rewrite reformulates the query into a retrieval-friendly phrase.
// Falls back to the original query when the model returns nothing usable.
func (r *QueryRewriter) Rewrite(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(rewriterSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	resp, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.2),
	)
	if err != nil {
		r.logger.Error("query rewrite failed", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		r.logger.Warn("rewriter returned no choices, keeping original query")
		return query, nil
	}

	rewritten := cleanRewrite(resp.Choices[0].Content)
	if rewritten == "" {
		r.logger.Warn("rewriter returned empty phrase, keeping original query")
		return query, nil
	}

	r.logger.Debug("rewrote query", "from", query, "to", rewritten)
	return rewritten, nil
}

// cleanRewrite strips quoting and surrounding whitespace the model tends to add,
// and keeps only the first line of multi-line responses.
func cleanRewrite(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'「」『』")
	return strings.TrimSpace(s)
}

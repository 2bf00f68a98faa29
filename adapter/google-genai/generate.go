package googlegenai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/southpawriter02/docstratum"
)

var answerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"text": {Type: genai.TypeString},
		"relevant_snippets": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeString,
			},
		},
	},
}

type response struct {
	Text             string   `json:"text"`
	RelevantSnippets []string `json:"relevant_snippets"`
}

// Generate answers the question. With no documents it produces the
// baseline answer; with documents it produces the context-grounded
// enhanced answer and matches the returned snippets back to the documents
// to form citations.
func (a *Adapter) Generate(ctx context.Context, question docstratum.Question, documents []docstratum.ContextDocument) (docstratum.Answer, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   answerSchema,
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: nil, // Disables thinking
		},
	}

	var prompt string
	if len(documents) == 0 {
		prompt = fmt.Sprintf(baselineTemplate, question.Content)
	} else {
		contexts := make([]string, 0, len(documents))
		for _, doc := range documents {
			contexts = append(contexts, doc.Content)
		}
		prompt = fmt.Sprintf(enhancedTemplate, question.Content, strings.Join(contexts, "\n"))
	}

	a.logger.Sugar().With(
		"question", question.Content,
		"documents", len(documents),
	).Info("generating answer")

	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.generativeModel,
		genai.Text(prompt),
		config,
	)
	if err != nil {
		return docstratum.Answer{}, fmt.Errorf("calling generative model: %v", err)
	}
	if len(resp.Candidates) != 1 {
		return docstratum.Answer{}, fmt.Errorf("got %v candidates, expected 1", len(resp.Candidates))
	}

	structuredResp := response{}
	if err := json.Unmarshal([]byte(resp.Text()), &structuredResp); err != nil {
		return docstratum.Answer{}, fmt.Errorf("unmarshalling response: %v", err)
	}

	answer := docstratum.Answer{
		Text: structuredResp.Text,
	}

	if usage := resp.UsageMetadata; usage != nil {
		answer.Tokens = int(usage.CandidatesTokenCount)
		answer.PromptTokens = int(usage.PromptTokenCount)
	}
	if answer.Tokens == 0 {
		answer.Tokens = docstratum.EstimateTokens([]byte(answer.Text))
	}

	if len(documents) > 0 {
		matched, unmatched := docstratum.MatchSnippetsToDocuments(structuredResp.RelevantSnippets, documents)
		for _, doc := range matched {
			answer.Citations = append(answer.Citations, docstratum.Citation{
				SourceID: doc.SourceID,
				Section:  doc.Section,
				Snippet:  doc.Content,
			})
		}
		for _, aSnippet := range unmatched {
			a.logger.Sugar().With("snippet", aSnippet).Warn("could not match snippet to a context document")
		}
	}

	return answer, nil
}

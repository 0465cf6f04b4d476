package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/salesdash/internal/core"
	"google.golang.org/genai"
)

type Gemini struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

func NewGemini(ctx context.Context, apiKey, model string, maxTokens int, temperature float32) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}, nil
}

func (g *Gemini) Chat(ctx context.Context, history []core.Message, tools []core.Tool) (core.Message, error) {
	system, contents := toGeminiContents(history)

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(tools)}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return core.Message{}, errors.New("empty candidates in gemini response")
	}

	msg := core.Message{Role: core.RoleAssistant}
	for i, fc := range resp.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			return core.Message{}, fmt.Errorf("failed to marshal function args: %w", err)
		}
		id := fc.ID
		if id == "" {
			id = fmt.Sprintf("call_%d", i)
		}
		msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
			ID:   id,
			Type: "function",
			Function: core.FunctionCall{
				Name:      fc.Name,
				Arguments: string(args),
			},
		})
	}
	if len(msg.ToolCalls) == 0 {
		msg.Content = resp.Text()
	}
	return msg, nil
}

// toGeminiContents splits system prompts out of history and maps the rest
// onto Gemini's user/model turns.
func toGeminiContents(history []core.Message) (string, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)
	callNames := make(map[string]string)

	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, m.Content)

		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
				continue
			}
			var parts []*genai.Part
			for _, tc := range m.ToolCalls {
				callNames[tc.ID] = tc.Function.Name
				var args map[string]any
				_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Function.Name, args))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))

		case core.RoleTool:
			name := callNames[m.ToolCallID]
			part := genai.NewPartFromFunctionResponse(name, map[string]any{"output": m.Content})
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))

		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	return strings.Join(system, "\n\n"), contents
}

func toGeminiDeclarations(tools []core.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 t.Function.Name,
			Description:          t.Function.Description,
			ParametersJsonSchema: t.Function.Parameters,
		})
	}
	return decls
}

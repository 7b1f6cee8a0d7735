package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-structurer/internal/llm"
	"github.com/jonathan/resume-structurer/internal/prompts"
	"github.com/jonathan/resume-structurer/internal/types"
)

// Enhancer rewrites resume fields through an llm.Client.
type Enhancer struct {
	client llm.Client
}

// New creates an Enhancer backed by client.
func New(client llm.Client) *Enhancer {
	return &Enhancer{client: client}
}

// Enhance rewrites a single field.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (*Response, error) {
	req.FieldType = ParseFieldType(string(req.FieldType))
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if e.client == nil {
		return nil, &APICallError{Message: "no model client configured"}
	}

	system, err := prompts.Get(prompts.EnhanceFile, "system")
	if err != nil {
		return nil, fmt.Errorf("failed to load system prompt: %w", err)
	}

	data := req.Context.templateData()
	data["Content"] = SanitizeForModel(req.Content)
	prompt, err := prompts.Render(prompts.EnhanceFile, string(req.FieldType), data)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s prompt: %w", req.FieldType, err)
	}

	llmReq := llm.Request{System: system, Prompt: prompt, Tier: tierFor(req.FieldType)}

	var enhanced string
	if req.FieldType == FieldSkills {
		enhanced, err = e.enhanceSkills(ctx, llmReq)
	} else {
		var raw string
		raw, err = e.client.GenerateContent(ctx, llmReq)
		enhanced = CleanResponse(raw)
	}
	if err != nil {
		return nil, &APICallError{Message: fmt.Sprintf("failed to enhance %s", req.FieldType), Cause: err}
	}
	if enhanced == "" {
		return nil, &APICallError{Message: fmt.Sprintf("empty response for %s", req.FieldType)}
	}

	return &Response{
		EnhancedContent: enhanced,
		OriginalContent: req.Content,
		FieldType:       req.FieldType,
		StyleChecks:     CheckStyle(req.FieldType, req.Content, enhanced),
	}, nil
}

func (e *Enhancer) enhanceSkills(ctx context.Context, req llm.Request) (string, error) {
	raw, err := e.client.GenerateJSON(ctx, req)
	if err != nil {
		return "", err
	}

	var skills []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &skills); err != nil {
		log.Printf("[enhance] skills response was not a JSON array, using text: %v", err)
		return CleanResponse(raw), nil
	}

	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == types.MaxSkills {
			break
		}
	}
	return strings.Join(out, ", "), nil
}

func tierFor(ft FieldType) llm.ModelTier {
	switch ft {
	case FieldTitle, FieldSkills:
		return llm.TierLite
	default:
		return llm.TierStandard
	}
}

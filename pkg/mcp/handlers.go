package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quillform/quill/pkg/engine"
	"github.com/quillform/quill/pkg/flowgraph"
	"github.com/quillform/quill/pkg/flowtest"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// HandleValidate implements the survey/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	s, errs := schema.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}

	questions := 0
	for _, b := range s.Blocks {
		questions += len(b.Questions)
	}
	return textResult(fmt.Sprintf("✓ %s is valid (%d blocks, %d questions)", s.Meta.Name, len(s.Blocks), questions)), nil
}

// HandleSchema implements the survey/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := schema.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// HandleGraph implements the survey/graph MCP tool.
func HandleGraph(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}
	format, _ := args["format"].(string)
	if format == "" {
		format = "json"
	}

	s, errs := schema.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}

	g := flowgraph.Build(registry.Build(s), s.Rules())
	switch format {
	case "json":
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(string(data)), nil
	case "mermaid":
		return textResult(flowgraph.Mermaid(g)), nil
	case "ascii":
		return textResult(flowgraph.ASCII(g)), nil
	}
	return errorResult(fmt.Sprintf("unknown format %q — use json, mermaid, or ascii", format)), nil
}

// HandleNext implements the survey/next MCP tool. Given the question just
// answered and the answer snapshot, it returns where the walk goes, what
// the respondent sees there, and any soft errors hit along the way.
func HandleNext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}
	current, _ := args["current"].(string)
	if current == "" {
		return errorResult("current argument is required"), nil
	}

	s, errs := schema.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}

	reg := registry.Build(s)
	if _, ok := reg.Lookup(current); !ok {
		return errorResult(fmt.Sprintf("unknown question %q", current)), nil
	}

	answers := make(engine.AnswerSet)
	if raw, ok := args["answers"].(map[string]any); ok {
		for k, v := range raw {
			answers[k] = v
		}
	}

	rules := s.Rules()
	res := engine.NextTarget(current, rules, answers, reg)

	response := map[string]any{
		"terminal": res.Terminal,
	}
	if !res.Terminal {
		response["target"] = res.Target
		if q, ok := reg.Lookup(res.Target); ok {
			piped := engine.ApplyPiping(q, rules, answers)
			response["question"] = piped
			if visible := engine.VisibleOptions(res.Target, rules, answers, reg); visible != nil {
				response["visible_options"] = visible
			}
		}
	}
	if len(res.Messages) > 0 {
		response["messages"] = res.Messages
	}
	if len(res.Meta) > 0 {
		response["meta"] = res.Meta
	}
	if len(res.Errs) > 0 {
		softErrs := make([]string, len(res.Errs))
		for i, e := range res.Errs {
			softErrs[i] = e.Error()
		}
		response["warnings"] = softErrs
	}

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// HandleTest implements the survey/test MCP tool.
func HandleTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	spec, err := flowtest.Load(path)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	surveyPath := spec.Survey
	if !filepath.IsAbs(surveyPath) {
		surveyPath = filepath.Join(filepath.Dir(path), surveyPath)
	}

	s, errs := schema.ValidateFile(surveyPath)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}

	output, err := flowtest.Run(s, spec)
	if err != nil {
		return errorResult(fmt.Sprintf("run scenarios: %s", err)), nil
	}

	data, _ := json.MarshalIndent(output, "", "  ")

	isErr := output.Summary.Failed > 0 || output.Summary.Errors > 0
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: isErr,
	}, nil
}

func hasErrors(errs []*schema.ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

func formatErrors(errs []*schema.ValidationError) string {
	var msgs []string
	for _, e := range errs {
		if e.Severity == "error" {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", e.Phase, e.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillform/quill/pkg/flowgraph"
	"github.com/quillform/quill/pkg/flowtest"
	"github.com/quillform/quill/pkg/preview"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
	"github.com/quillform/quill/pkg/tui"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Survey branching and flow engine",
	Long:  "quill — a survey flow engine: validate survey definitions, derive flow graphs, replay scripted scenarios, and walk surveys interactively.",
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [survey.yaml]",
	Short: "Validate a survey YAML file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	s, errs := schema.ValidateFile(filePath)
	if len(errs) > 0 {
		var errors []*schema.ValidationError
		var warnings []*schema.ValidationError
		for _, e := range errs {
			if e.Severity == "warning" {
				warnings = append(warnings, e)
			} else {
				errors = append(errors, e)
			}
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "  ⚠ [%s] %s\n", w.Phase, w.Message)
			if w.Path != "" {
				fmt.Fprintf(os.Stderr, "    at: %s\n", w.Path)
			}
		}
		if len(errors) > 0 {
			fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(errors))
			for i, e := range errors {
				fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
				if e.Path != "" {
					fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
				}
			}
			return fmt.Errorf("validation failed with %d error(s)", len(errors))
		}
	}
	questions := 0
	for _, b := range s.Blocks {
		questions += len(b.Questions)
	}
	fmt.Printf("✓ %s is valid (%d blocks, %d questions)\n", s.Meta.Name, len(s.Blocks), questions)
	return nil
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with the survey JSON Schema",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the survey JSON Schema to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := schema.GenerateJSONSchema()
		if err != nil {
			return fmt.Errorf("generate schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

// --- graph ---

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph [survey.yaml]",
	Short: "Derive and render the survey flow graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	s, err := loadValid(args[0])
	if err != nil {
		return err
	}

	g := flowgraph.Build(registry.Build(s), s.Rules())
	switch graphFormat {
	case "mermaid":
		fmt.Print(flowgraph.Mermaid(g))
	case "ascii":
		fmt.Print(flowgraph.ASCII(g))
	case "json":
		data, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal graph: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown format %q — use mermaid, ascii, or json", graphFormat)
	}

	for _, w := range g.Warnings {
		fmt.Fprintf(os.Stderr, "  ⚠ %s\n", w)
	}
	return nil
}

// --- test ---

var testJSON bool

var testCmd = &cobra.Command{
	Use:   "test [flows.yaml]",
	Short: "Replay flow scenarios against a survey",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	specPath := args[0]
	spec, err := flowtest.Load(specPath)
	if err != nil {
		return err
	}

	surveyPath := spec.Survey
	if !filepath.IsAbs(surveyPath) {
		surveyPath = filepath.Join(filepath.Dir(specPath), surveyPath)
	}
	s, err := loadValid(surveyPath)
	if err != nil {
		return err
	}

	output, err := flowtest.Run(s, spec)
	if err != nil {
		return fmt.Errorf("run scenarios: %w", err)
	}

	if testJSON {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printTestResults(output)
	}

	if output.Summary.Failed > 0 || output.Summary.Errors > 0 {
		return fmt.Errorf("%d of %d scenario(s) did not pass", output.Summary.Failed+output.Summary.Errors, output.Summary.Total)
	}
	return nil
}

func printTestResults(output *flowtest.Output) {
	for _, sc := range output.Scenarios {
		switch sc.Status {
		case "passed":
			fmt.Printf("✓ %s\n", sc.ScenarioName)
		case "failed":
			fmt.Printf("✗ %s\n", sc.ScenarioName)
			for _, a := range sc.Assertions {
				if a.Passed {
					continue
				}
				fmt.Printf("    %s: %s\n", a.Type, a.Message)
				if a.Expected != "" || a.Actual != "" {
					fmt.Printf("      expected: %s\n      actual:   %s\n", a.Expected, a.Actual)
				}
			}
		default:
			fmt.Printf("⚠ %s: %s\n", sc.ScenarioName, sc.Error)
		}
	}
	fmt.Printf("\n%d total, %d passed, %d failed, %d errors\n",
		output.Summary.Total, output.Summary.Passed, output.Summary.Failed, output.Summary.Errors)
}

// --- walk ---

var walkCmd = &cobra.Command{
	Use:   "walk [survey.yaml]",
	Short: "Walk a survey in the REPL, one question at a time",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

func runWalk(cmd *cobra.Command, args []string) error {
	s, err := loadValid(args[0])
	if err != nil {
		return err
	}
	p, err := preview.New(s)
	if err != nil {
		return err
	}
	return p.Run()
}

// --- preview ---

var previewCmd = &cobra.Command{
	Use:   "preview [survey.yaml]",
	Short: "Walk a survey in the full-screen terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	s, err := loadValid(args[0])
	if err != nil {
		return err
	}
	return tui.Run(s)
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quill %s (%s)\n", version, commit)
	},
}

// loadValid validates a survey file and returns it, or a summary error.
func loadValid(path string) (*schema.Survey, error) {
	s, errs := schema.ValidateFile(path)
	count := 0
	for _, e := range errs {
		if e.Severity == "error" {
			count++
			fmt.Fprintf(os.Stderr, "  ✗ [%s] %s\n", e.Phase, e.Message)
		}
	}
	if count > 0 {
		return nil, fmt.Errorf("%s: %d validation error(s)", path, count)
	}
	return s, nil
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "mermaid", "Output format: mermaid, ascii, or json")
	testCmd.Flags().BoolVar(&testJSON, "json", false, "Output results as structured JSON")

	schemaCmd.AddCommand(schemaExportCmd)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/main")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// InvalidError is returned by ParseFile for a manifest that fails the schema.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("invalid manifest %s: %s", e.Path, strings.Join(parts, "; "))
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw package.json bytes against the embedded schema.
// The error return is for malformed JSON or schema compilation failures;
// schema violations are reported in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords carry no information of their own.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

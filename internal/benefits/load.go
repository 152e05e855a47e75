package benefits

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed benefit.schema.json
var benefitSchemaJSON []byte

var benefitSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(benefitSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("compiling embedded benefit schema: %v", err))
	}
	return schema
}

// ParseError means the raw payload is not usable at all. It is fatal:
// nothing can be loaded from it.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// RecordError collects the schema violations of a single catalog record.
// Index is 1-based to match the validation report read by humans.
type RecordError struct {
	Index  int
	ID     string
	Title  string
	Issues []string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %s", e.Index, e.ID, strings.Join(e.Issues, "; "))
}

// Load parses and validates a raw catalog payload. Invalid records are
// collected and skipped; valid records load regardless, so the caller
// decides whether any error is fatal. A *ParseError is returned only when
// the payload itself is not a JSON array.
func Load(raw []byte) (*Benefits, []RecordError, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Reason: "catalog is not valid JSON", Err: err}
	}

	records, ok := payload.([]any)
	if !ok {
		return nil, nil, &ParseError{Reason: "catalog is not a top-level array"}
	}

	loaded := &Benefits{}
	var errs []RecordError
	for i, record := range records {
		issues := validateRecord(record)
		if len(issues) > 0 {
			errs = append(errs, RecordError{
				Index:  i + 1,
				ID:     rawString(record, "id"),
				Title:  rawString(record, "title"),
				Issues: issues,
			})
			continue
		}

		benefit, err := decodeRecord(record)
		if err != nil {
			errs = append(errs, RecordError{
				Index:  i + 1,
				ID:     rawString(record, "id"),
				Title:  rawString(record, "title"),
				Issues: []string{err.Error()},
			})
			continue
		}

		loaded.Items = append(loaded.Items, benefit)
	}

	return loaded, errs, nil
}

// LoadFile reads and loads a catalog file.
func LoadFile(path string) (*Benefits, []RecordError, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	return Load(raw)
}

// validateRecord runs the structural schema pass and then the conditional
// invariants the schema language cannot express.
func validateRecord(record any) []string {
	var issues []string

	result, err := benefitSchema.Validate(gojsonschema.NewGoLoader(record))
	if err != nil {
		return []string{fmt.Sprintf("schema validation failed: %v", err)}
	}
	for _, re := range result.Errors() {
		issues = append(issues, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}

	obj, ok := record.(map[string]any)
	if !ok {
		return issues
	}

	if tags, ok := obj["tags"].([]any); ok {
		var invalid []string
		for _, t := range tags {
			tag, ok := t.(string)
			if !ok {
				continue
			}
			if !validTag(tag) {
				invalid = append(invalid, tag)
			}
		}
		if len(invalid) > 0 {
			issues = append(issues, fmt.Sprintf("invalid tag values: %s", strings.Join(invalid, ", ")))
		}
	}

	if obj["underutilized"] == true {
		reason, _ := obj["underutilizedReason"].(string)
		if strings.TrimSpace(reason) == "" {
			issues = append(issues, `when "underutilized" is true, "underutilizedReason" must be a non-empty string`)
		}
	}

	if obj["level"] == LevelFederal {
		if state, ok := obj["state"].(string); ok && state != "" {
			issues = append(issues, `federal benefits must not carry a "state" value`)
		}
	}

	if app, ok := obj["application"].(map[string]any); ok {
		if url, _ := app["url"].(string); strings.TrimSpace(url) == "" {
			issues = append(issues, `field "application.url" must be a non-empty string`)
		}
	}

	return issues
}

func decodeRecord(record any) (*Benefit, error) {
	var benefit Benefit
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &benefit,
		TagName: "json",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &benefit, nil
}

func validTag(tag string) bool {
	for _, t := range ValidTags {
		if t == tag {
			return true
		}
	}
	return false
}

func rawString(record any, key string) string {
	obj, ok := record.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

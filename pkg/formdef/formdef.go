// Package formdef derives form definitions, and engine-ready rule chains,
// from the OpenAPI document describing the content API. Only flat JSON
// object request bodies are supported; the engine validates fixed field
// sets, not nested structures.
package formdef

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-newsreader/pkg/form"
)

// Field describes one request-body property relevant to form construction.
type Field struct {
	Name      string
	Title     string
	Type      string
	Required  bool
	MinLength int
	MaxLength int
	Format    string
	Pattern   string
}

// Definition is the flat field set extracted from one operation.
type Definition struct {
	OperationID string
	Fields      []Field
}

// FromDocument extracts the form definition for operationID from a raw
// OpenAPI document.
func FromDocument(ctx context.Context, data []byte, operationID string) (Definition, error) {
	if len(data) == 0 {
		return Definition{}, errors.New("formdef: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Definition{}, fmt.Errorf("formdef: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return Definition{}, errors.New("formdef: document does not contain any paths")
	}

	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			return fromOperation(op)
		}
	}
	return Definition{}, fmt.Errorf("formdef: operation %q not found", operationID)
}

func fromOperation(op *openapi3.Operation) (Definition, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return Definition{}, fmt.Errorf("formdef: operation %q has no request body", op.OperationID)
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return Definition{}, fmt.Errorf("formdef: operation %q has no JSON request schema", op.OperationID)
	}

	schema := media.Schema.Value
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	def := Definition{OperationID: op.OperationID}
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		field := Field{
			Name:     name,
			Title:    fieldTitle(name, prop.Title),
			Type:     firstSchemaType(prop.Type),
			Required: required[name],
			Format:   prop.Format,
			Pattern:  prop.Pattern,
		}
		if prop.MinLength > 0 {
			field.MinLength = int(prop.MinLength)
		}
		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}
		def.Fields = append(def.Fields, field)
	}
	if len(def.Fields) == 0 {
		return Definition{}, fmt.Errorf("formdef: operation %q has no usable properties", op.OperationID)
	}
	return def, nil
}

// Form materializes the definition into a validation engine instance with
// generated rule chains.
func (d Definition) Form() (*form.Form, error) {
	initial := form.Values{}
	rules := form.Rules{}
	for _, field := range d.Fields {
		initial[field.Name] = ""
		if chain := field.ruleChain(); len(chain) > 0 {
			rules[field.Name] = chain
		}
	}
	return form.New(initial, rules)
}

func (f Field) ruleChain() []form.Rule {
	var chain []form.Rule
	if f.Required {
		chain = append(chain, form.Required(fmt.Sprintf("%s is required", f.Title)))
	}
	if f.MinLength > 0 {
		chain = append(chain, form.MinLength(f.MinLength,
			fmt.Sprintf("%s must be at least %d characters", f.Title, f.MinLength)))
	}
	if f.MaxLength > 0 {
		chain = append(chain, form.MaxLength(f.MaxLength,
			fmt.Sprintf("%s must be at most %d characters", f.Title, f.MaxLength)))
	}
	if strings.EqualFold(f.Format, "email") {
		chain = append(chain, form.Email("Please enter a valid email address"))
	}
	if f.Pattern != "" {
		if re, err := regexp.Compile(f.Pattern); err == nil {
			chain = append(chain, form.Pattern(re, fmt.Sprintf("%s has an invalid format", f.Title)))
		}
	}
	return chain
}

func fieldTitle(name, title string) string {
	if title != "" {
		return title
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

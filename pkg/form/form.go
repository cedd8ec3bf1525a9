// Package form implements a validation engine for flat, fixed field sets:
// per-field rule chains evaluated on blur and submit, optimistic error
// clearing on change, and a reserved form-level slot for submission errors.
package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// FormErrorField is the reserved errors key holding submission failures that
// are not attributable to a single field.
const FormErrorField = "_form"

// Values maps field names to their current value.
type Values map[string]any

// Rule pairs a predicate with the message shown when it fails. Validate
// receives the field value and a snapshot of all values so rules can depend
// on sibling fields. A returned error counts as a failure using the rule's
// own message; rule errors never escape the engine.
type Rule struct {
	Validate func(ctx context.Context, value any, values Values) (bool, error)
	Message  string
}

// Rules maps field names to ordered rule chains. Evaluation short-circuits on
// the first failing rule.
type Rules map[string][]Rule

// SubmitFunc receives the validated values snapshot. A returned error is
// recorded under FormErrorField.
type SubmitFunc func(ctx context.Context, values Values) error

// Form holds the mutable state of one form instance. State transitions are
// serialized internally; rule chains run against a values snapshot so a slow
// asynchronous rule never observes a half-applied edit.
type Form struct {
	mu         sync.Mutex
	initial    Values
	values     Values
	errors     map[string]string
	touched    map[string]bool
	submitting bool
	rules      Rules
	fields     []string
}

// New declares a form over the field set given by initial. Rules may only
// reference declared fields. Referencing an undeclared field in any later
// operation is a programmer error and panics.
func New(initial Values, rules Rules) (*Form, error) {
	if len(initial) == 0 {
		return nil, errors.New("form: at least one field is required")
	}
	for name := range rules {
		if _, ok := initial[name]; !ok {
			return nil, fmt.Errorf("form: rules reference undeclared field %q", name)
		}
	}

	fields := make([]string, 0, len(initial))
	for name := range initial {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	return &Form{
		initial: cloneValues(initial),
		values:  cloneValues(initial),
		errors:  map[string]string{},
		touched: map[string]bool{},
		rules:   rules,
		fields:  fields,
	}, nil
}

// MustNew is New for statically known definitions; it panics on error.
func MustNew(initial Values, rules Rules) *Form {
	f, err := New(initial, rules)
	if err != nil {
		panic(err)
	}
	return f
}

// Change records an edit. The field's current error is cleared optimistically
// so the user is not interrupted mid-edit; it can only reappear through the
// next Blur or Submit validation.
func (f *Form) Change(field string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mustField(field)
	f.values[field] = value
	delete(f.errors, field)
}

// Blur marks the field as touched and runs its rule chain against the current
// values. The call returns once the slowest rule in the chain completes.
func (f *Form) Blur(ctx context.Context, field string) {
	f.mu.Lock()
	f.mustField(field)
	f.touched[field] = true
	value := f.values[field]
	snapshot := cloneValues(f.values)
	chain := f.rules[field]
	f.mu.Unlock()

	msg := evalChain(ctx, chain, value, snapshot)

	f.mu.Lock()
	defer f.mu.Unlock()
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

// Submit touches and revalidates every declared field, replacing the error
// set wholesale. The handler runs only when every chain passes; its error, if
// any, is stored under FormErrorField rather than returned. The submitting
// flag resets on every path. Submit reports whether the handler ran and
// succeeded.
func (f *Form) Submit(ctx context.Context, onValid SubmitFunc) bool {
	f.mu.Lock()
	f.submitting = true
	snapshot := cloneValues(f.values)
	fields := f.fields
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	failed := map[string]string{}
	for _, field := range fields {
		if msg := evalChain(ctx, f.rules[field], snapshot[field], snapshot); msg != "" {
			failed[field] = msg
		}
	}

	f.mu.Lock()
	for _, field := range fields {
		f.touched[field] = true
	}
	f.errors = failed
	f.mu.Unlock()

	if len(failed) > 0 {
		return false
	}
	if onValid == nil {
		return true
	}
	if err := onValid(ctx, snapshot); err != nil {
		f.mu.Lock()
		f.errors[FormErrorField] = err.Error()
		f.mu.Unlock()
		return false
	}
	return true
}

// SetFieldError imposes an error from outside the rule system, such as a
// server-reported conflict. An empty message clears the field's error.
func (f *Form) SetFieldError(field, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field != FormErrorField {
		f.mustField(field)
	}
	if message == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = message
}

// Reset restores the initial values and clears errors, touched flags and the
// submitting flag.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = cloneValues(f.initial)
	f.errors = map[string]string{}
	f.touched = map[string]bool{}
	f.submitting = false
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneValues(f.values)
}

// Value returns the current value of one field.
func (f *Form) Value(field string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mustField(field)
	return f.values[field]
}

// Errors returns a copy of the current error set.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the current message for one field, empty when clear.
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if field != FormErrorField {
		f.mustField(field)
	}
	return f.errors[field]
}

// FormError returns the form-level submission error, if any.
func (f *Form) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[FormErrorField]
}

// Touched reports whether the field has lost focus or been force-validated by
// a submit attempt. Consumers display an error only for touched fields.
func (f *Form) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mustField(field)
	return f.touched[field]
}

// Submitting reports whether a Submit call is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Valid is a display-only flag: true when no field holds an error and at
// least one field has been touched. A pristine form is not reported valid
// since no validation has run. Submit does not consult this flag.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.touched) == 0 {
		return false
	}
	for _, msg := range f.errors {
		if msg != "" {
			return false
		}
	}
	return true
}

// Fields returns the declared field names in sorted order.
func (f *Form) Fields() []string {
	return append([]string{}, f.fields...)
}

func (f *Form) mustField(field string) {
	if _, ok := f.initial[field]; !ok {
		panic(fmt.Sprintf("form: undeclared field %q", field))
	}
}

func evalChain(ctx context.Context, chain []Rule, value any, values Values) string {
	for _, rule := range chain {
		if rule.Validate == nil {
			continue
		}
		ok, err := rule.Validate(ctx, value, values)
		if err != nil || !ok {
			return rule.Message
		}
	}
	return ""
}

func cloneValues(values Values) Values {
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

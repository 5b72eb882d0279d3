// Package forms holds the create/edit screens: one draft type per entity, a
// declarative validation rule table, and the normalization that turns a
// validated draft back into its entity. Forms never persist anything
// themselves; a validated record is handed up to the list screen's save
// handler. The only network access a form performs is loading the reference
// pickers.
package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule maps one field to a predicate and the error message shown when the
// predicate fails. Rules run in order at submit time; the first failing rule
// for a field wins.
type Rule[D any] struct {
	Field   string
	Valid   func(d *D) bool
	Message string
}

// Form is the shared draft-state machine: a draft, its rule table, and the
// field-scoped error map. A form is rebuilt from the entity every time it
// opens; it has no memory of a previous editing session.
type Form[D any] struct {
	draft  *D
	rules  []Rule[D]
	apply  func(d *D, field, value string) error
	errors map[string]string
	edit   bool
}

func New[D any](draft *D, edit bool, rules []Rule[D], apply func(d *D, field, value string) error) *Form[D] {
	return &Form[D]{
		draft:  draft,
		rules:  rules,
		apply:  apply,
		errors: map[string]string{},
		edit:   edit,
	}
}

func (f *Form[D]) Draft() *D { return f.draft }

// EditMode reports whether the form opened on an existing record.
func (f *Form[D]) EditMode() bool { return f.edit }

// Set assigns a field from its textual representation and clears that
// field's error, leaving every other field's error untouched.
func (f *Form[D]) Set(field, value string) error {
	if err := f.apply(f.draft, field, value); err != nil {
		return err
	}
	delete(f.errors, field)
	return nil
}

// Change applies a typed mutation (picker selections, toggles) and clears the
// named field's error.
func (f *Form[D]) Change(field string, mutate func(d *D)) {
	mutate(f.draft)
	delete(f.errors, field)
}

// Validate runs the rule table and returns true when the draft is clean.
// Validation happens only here, at submit time, never on change.
func (f *Form[D]) Validate() bool {
	f.errors = map[string]string{}
	for _, r := range f.rules {
		if _, dup := f.errors[r.Field]; dup {
			continue
		}
		if !r.Valid(f.draft) {
			f.errors[r.Field] = r.Message
		}
	}
	return len(f.errors) == 0
}

// Errors returns the field-scoped messages from the last Validate call.
func (f *Form[D]) Errors() map[string]string { return f.errors }

// Predicates shared by the rule tables.

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func isTenDigits(s string) bool {
	return validate.Var(s, "len=10,numeric") == nil
}

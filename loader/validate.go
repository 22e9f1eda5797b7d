package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/arkfall/engine/effects"
	"github.com/nathoo/arkfall/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func knownCategory(c types.Category) bool {
	for _, k := range types.Categories {
		if k == c {
			return true
		}
	}
	return false
}

// validate checks the compiled tables for consistency.
func validate(tables Tables) error {
	ve := &ValidationError{}
	validateTables(tables, ve)

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateTables(tables Tables, ve *ValidationError) {
	for cat, table := range tables {
		if !knownCategory(cat) {
			for _, e := range table.Entries {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"encounter %q has unknown category %q", e.ID, cat))
			}
			continue
		}

		ids := map[string]bool{}
		for _, e := range table.Entries {
			if ids[e.ID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"duplicate encounter ID %q in category %q", e.ID, cat))
			}
			ids[e.ID] = true
			validateEntry(e, ve)
		}
	}

	// Missing categories are reported by the engine as unavailable.
	for _, cat := range types.Categories {
		if len(tables[cat].Entries) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"no encounters defined for category %q", cat))
		}
	}
}

func validateEntry(e types.EncounterEntry, ve *ValidationError) {
	switch {
	case e.Weight < 0:
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"encounter %q has negative weight %g", e.ID, e.Weight))
	case e.Weight == 0:
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"encounter %q has zero weight and will never be selected", e.ID))
	}

	if e.Title == "" {
		ve.Errors = append(ve.Errors, fmt.Sprintf("encounter %q has no title", e.ID))
	}

	for i, c := range e.Choices {
		if c.Label == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"encounter %q choice %d has no label", e.ID, i+1))
		}
		validateEffects(e.ID, c.Effects, ve)
	}
}

func validateEffects(id string, effs []types.Effect, ve *ValidationError) {
	for _, eff := range effs {
		if !effects.Known(eff.Type) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"encounter %q uses unknown effect type %q", id, eff.Type))
			continue
		}

		switch eff.Type {
		case effects.TypeTag:
			name, _ := eff.Params["tag"].(string)
			if _, ok := types.TagByName(name); !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"encounter %q tags crew with unknown tag %q", id, name))
			}
		case effects.TypeUpgrade:
			if up, _ := eff.Params["id"].(string); up == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"encounter %q installs an upgrade with no id", id))
			}
		case effects.TypeChance:
			if p, ok := eff.Params["percent"].(int); !ok || p < 0 || p > 100 {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"encounter %q chance percent should be a whole number in 0-100", id))
			}
			for _, key := range []string{"then", "else"} {
				if branch, ok := eff.Params[key].([]types.Effect); ok {
					validateEffects(id, branch, ve)
				}
			}
		}
	}
}

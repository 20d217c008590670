// Package selection resolves the cascading operator -> region -> station picks
// into a concrete filter plus the option lists offered at each level
package selection

import (
	"slices"
	"strings"
)

// Choice is All or a specific set of values; an empty specific set means All
type Choice struct {
	values []string
}

// All selects every candidate
func All() Choice { return Choice{} }

// Only selects the given values, blanks and duplicates dropped
func Only(values ...string) Choice {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	slices.Sort(out)
	return Choice{values: slices.Compact(out)}
}

// IsAll reports whether the choice selects every candidate
func (c Choice) IsAll() bool { return len(c.values) == 0 }

// Values returns the sorted specific values, nil for All
func (c Choice) Values() []string { return slices.Clone(c.values) }

// OperatorChoice is All or exactly one operator
type OperatorChoice struct {
	name string
}

// AllOperators selects every operator
func AllOperators() OperatorChoice { return OperatorChoice{} }

// Operator selects one operator; a blank name is All
func Operator(name string) OperatorChoice { return OperatorChoice{name: strings.TrimSpace(name)} }

// IsAll reports whether every operator is selected
func (o OperatorChoice) IsAll() bool { return o.name == "" }

// Name is the chosen operator, empty for All
func (o OperatorChoice) Name() string { return o.name }

// Label is the display label
func (o OperatorChoice) Label() string {
	if o.IsAll() {
		return LabelAllOperators
	}
	return o.name
}

// Matches reports whether a row's operator passes
func (o OperatorChoice) Matches(op string) bool { return o.IsAll() || o.name == op }

// Selection is the raw user input; a nil Operator means nothing chosen yet
type Selection struct {
	Operator *OperatorChoice
	Regions  Choice
	Stations Choice
}

// Set reports whether an operator has been chosen
func (s Selection) Set() bool { return s.Operator != nil }

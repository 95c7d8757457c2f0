// Package model defines the declarative form description consumed by the
// renderers and the table entry form. A FormSpec is an ordered list of Field
// descriptors (text inputs or selects backed by an OptionList) together with a
// Schema that maps each field name to its rules. Rules expose canonical
// identifiers (required, minLength/maxLength, email, oneOf, pattern) with
// string parameters and the human readable message surfaced when the rule
// fails, so specs can be declared in code or loaded from YAML without losing
// fidelity.
package model

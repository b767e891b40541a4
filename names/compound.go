// Package names parses and renders compound names: function-like
// identifiers that carry ordered argument labels, written
// base(label1:label2:).
package names

import "strings"

// A Parameter is one label slot of a CompoundName. It is either a Named
// label or a Wildcard (written "_" or left empty).
type Parameter struct {
	label   string
	isNamed bool
}

// Named returns a parameter with the given external label.
func Named(label string) Parameter { return Parameter{label: label, isNamed: true} }

// Wildcard is the unnamed ("_") parameter.
var Wildcard = Parameter{}

// IsWildcard reports whether p is the unnamed parameter.
func (p Parameter) IsWildcard() bool { return !p.isNamed }

// Label returns the parameter's label, or "" for Wildcard.
func (p Parameter) Label() string { return p.label }

// LabelOrUnderscore returns the label, or "_" for Wildcard.
func (p Parameter) LabelOrUnderscore() string {
	if p.IsWildcard() {
		return "_"
	}
	return p.label
}

// LabelOrEmpty returns the label, or "" for Wildcard.
func (p Parameter) LabelOrEmpty() string {
	if p.IsWildcard() {
		return ""
	}
	return p.label
}

// Equal reports whether two parameters denote the same label.
func (p Parameter) Equal(q Parameter) bool {
	return p.IsWildcard() == q.IsWildcard() && p.label == q.label
}

// A CompoundName is a base name plus an ordered sequence of parameter
// labels, e.g. "foo(a:b:)" or a bare "foo" with no parameters.
type CompoundName struct {
	BaseName   string
	Parameters []Parameter
}

// Parse parses s into a CompoundName. It is total: every string parses to
// some CompoundName, never an error.
//
// Grammar: if s contains no '(', s is the whole base name with no
// parameters. Otherwise the base name is the text before '(', and the
// parenthesized body is split on ':', keeping empty leading/trailing
// segments except the trailing empty segment produced by the final ':'.
// Each remaining segment is one parameter: "" or "_" is Wildcard, anything
// else is Named.
func Parse(s string) CompoundName {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return CompoundName{BaseName: s}
	}
	base := s[:open]
	body := s[open+1:]
	body = strings.TrimSuffix(body, ")")

	if body == "" {
		return CompoundName{BaseName: base}
	}

	labels := strings.Split(body, ":")
	// The segment after the final ':' is always empty (the body ends in
	// ":)"); drop it. If it is non-empty, the caller's input had trailing
	// text with no colon, which we still treat as a (Named) parameter, so
	// only drop a truly empty trailing segment.
	if n := len(labels); n > 0 && labels[n-1] == "" {
		labels = labels[:n-1]
	}

	params := make([]Parameter, len(labels))
	for i, label := range labels {
		if label == "" || label == "_" {
			params[i] = Wildcard
		} else {
			params[i] = Named(label)
		}
	}
	return CompoundName{BaseName: base, Parameters: params}
}

// Render reconstructs the textual form of n: base name, plus, if there are
// any parameters, "(" + each label suffixed with ":" + ")". Unnamed labels
// render as "_". Render(Parse(s)) == s only for already-canonical s;
// Parse(Render(n)) == n always.
func (n CompoundName) Render() string {
	if len(n.Parameters) == 0 {
		return n.BaseName
	}
	var b strings.Builder
	b.WriteString(n.BaseName)
	b.WriteByte('(')
	for _, p := range n.Parameters {
		b.WriteString(p.LabelOrUnderscore())
		b.WriteByte(':')
	}
	b.WriteByte(')')
	return b.String()
}

// Parameter returns the i'th parameter, or Wildcard and false if i is out
// of range.
func (n CompoundName) Parameter(i int) (Parameter, bool) {
	if i < 0 || i >= len(n.Parameters) {
		return Wildcard, false
	}
	return n.Parameters[i], true
}

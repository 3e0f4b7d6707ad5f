package binding

import (
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// NameParts splits an identifier into lower case words at underscores
// and case changes: getHTTPResponse_code gives get, http, response, code.
func NameParts(name string) []string {
	var parts []string
	for _, part := range strings.Split(strcase.ToSnake(name), "_") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Prefixed returns prefix+part for every name part of name.
func Prefixed(prefix, name string) []string {
	parts := NameParts(name)
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return parts
}

// FeatureSet collects features without duplicates.
type FeatureSet map[string]struct{}

func (s FeatureSet) Add(features ...string) {
	for _, f := range features {
		if f != "" {
			s[f] = struct{}{}
		}
	}
}

// Sorted returns the features in lexical order.
func (s FeatureSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

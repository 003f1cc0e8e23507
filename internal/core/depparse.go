package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/types"
)

// clausePattern matches one dependency element: a package name followed
// by an optional parenthesised version constraint. Alternatives
// ("|..."), architecture qualifiers ("[amd64]") and multiarch suffixes
// (":any") trail the match and are ignored.
var clausePattern = regexp.MustCompile(`^([A-Za-z0-9.+-]+)\s*(?:\(\s*([<>=~]+)\s+([0-9A-Za-z.:+~-]+)\s*\))?`)

// ParseDependencies splits a raw Depends-style value on commas and
// extracts one clause per element. Elements that are empty after
// trimming contribute nothing. Elements with no extractable package
// name are collected into a single malformed-dependency error; the
// clauses parsed from the healthy elements are still returned alongside
// it, so a caller may use the partial result and surface the error
// separately.
func ParseDependencies(raw string) ([]types.Clause, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	elements := strings.Split(raw, ",")
	clauses := make([]types.Clause, 0, len(elements))
	var malformed []string
	for _, element := range elements {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		match := clausePattern.FindStringSubmatch(element)
		if match == nil {
			malformed = append(malformed, element)
			continue
		}
		clause := types.Clause{Name: match[1]}
		if match[2] != "" {
			clause.Op = types.ConstraintOp(match[2])
			clause.Version = match[3]
		}
		clauses = append(clauses, clause)
	}
	if len(malformed) > 0 {
		return clauses, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed dependency: no package name in %q", strings.Join(malformed, ", ")))
	}
	return clauses, nil
}

// ClauseNames returns the distinct package names across clauses,
// keeping first-seen order.
func ClauseNames(clauses []types.Clause) []string {
	seen := make(map[string]bool, len(clauses))
	names := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if seen[clause.Name] {
			continue
		}
		seen[clause.Name] = true
		names = append(names, clause.Name)
	}
	return names
}

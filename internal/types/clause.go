package types

import "fmt"

// Clause is one parsed dependency requirement. Op holds the raw
// comparison token from the index; it is informational only and never
// filters resolution.
type Clause struct {
	Name    string
	Op      ConstraintOp
	Version string
}

func (c Clause) String() string {
	if c.Op == ConstraintOpNone || c.Version == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s %s)", c.Name, c.Op, c.Version)
}

type ResolvedPackage struct {
	PackageRow
	Requirement Clause
}

// Resolution maps each package name to exactly one resolved record.
// A name present in Packages is never expanded again.
type Resolution struct {
	Packages map[string]ResolvedPackage
	Missing  []string
}

func (r Resolution) Names() []string {
	out := make([]string, 0, len(r.Packages))
	for name := range r.Packages {
		out = append(out, name)
	}
	return out
}

package types

type PackageType string

const (
	PackageTypeDeb PackageType = "deb"
	PackageTypeSrc PackageType = "deb-src"
)

type MatchMode string

const (
	MatchExact     MatchMode = "exact"
	MatchSubstring MatchMode = "substring"
)

type ConstraintOp string

const (
	ConstraintOpNone  ConstraintOp = ""
	ConstraintOpEq    ConstraintOp = "="
	ConstraintOpGte   ConstraintOp = ">="
	ConstraintOpLte   ConstraintOp = "<="
	ConstraintOpGt    ConstraintOp = ">>"
	ConstraintOpLt    ConstraintOp = "<<"
	ConstraintOpTilde ConstraintOp = "~"
)

package ports

import (
	"debdepot/internal/types"
)

// PlatformPort reports the running distribution, used to default the
// active profile when flags and configuration leave it unset.
type PlatformPort interface {
	Detect() types.PlatformInfo
}

package ports

import "debdepot/internal/types"

type SourceListPort interface {
	Load(path string) ([]types.SourceEntry, error)
}

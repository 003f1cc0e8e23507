package ports

import "debdepot/internal/types"

type ProfileSourcePort interface {
	LoadProfiles(path string) (map[string]types.Profile, error)
}

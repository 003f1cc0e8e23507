package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/ports"
)

type LocalDebsAdapter struct{}

func NewLocalDebsAdapter() LocalDebsAdapter {
	return LocalDebsAdapter{}
}

// ListDebs maps the .deb files already present in dir to their sizes.
// A missing directory is an empty listing, not an error.
func (a LocalDebsAdapter) ListDebs(dir string) (map[string]int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int64{}, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read download directory").
			WithCause(err)
	}
	debs := map[string]int64{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".deb") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		debs[entry.Name()] = info.Size()
	}
	return debs, nil
}

var _ ports.LocalDebsPort = LocalDebsAdapter{}

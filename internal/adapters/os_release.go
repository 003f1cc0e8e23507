package adapters

import (
	"bufio"
	"os"
	"strings"

	"debdepot/internal/ports"
	"debdepot/internal/types"
)

const osReleasePath = "/etc/os-release"

// OSReleaseAdapter detects the running distribution from
// /etc/os-release. Hosts without the file report wildcard values, which
// profile validation rejects unless flags or a profile override them.
type OSReleaseAdapter struct {
	Path string
}

func NewOSReleaseAdapter() OSReleaseAdapter {
	return OSReleaseAdapter{Path: osReleasePath}
}

func (a OSReleaseAdapter) Detect() types.PlatformInfo {
	info := types.PlatformInfo{ID: "*", Codename: "*"}
	file, err := os.Open(a.Path)
	if err != nil {
		return info
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			info.ID = value
		case "VERSION_CODENAME":
			info.Codename = value
		}
	}
	return info
}

var _ ports.PlatformPort = OSReleaseAdapter{}

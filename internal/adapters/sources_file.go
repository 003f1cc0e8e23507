package adapters

import (
	"bufio"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/ports"
	"debdepot/internal/types"
)

type SourcesFileAdapter struct{}

func NewSourcesFileAdapter() SourcesFileAdapter {
	return SourcesFileAdapter{}
}

func (a SourcesFileAdapter) Load(path string) ([]types.SourceEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("sources list not found").
			WithCause(err)
	}
	defer file.Close()

	var entries []types.SourceEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry, ok := parseSourceLine(scanner.Text())
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read sources list").
			WithCause(err)
	}
	return entries, nil
}

func parseSourceLine(line string) (types.SourceEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return types.SourceEntry{}, false
	}
	fields := strings.Fields(line)
	// An option group like [signed-by=...] sits between the type and
	// the url and does not affect repository identity.
	if len(fields) >= 2 && strings.HasPrefix(fields[1], "[") {
		end := 1
		for end < len(fields) && !strings.HasSuffix(fields[end], "]") {
			end++
		}
		if end >= len(fields) {
			return types.SourceEntry{}, false
		}
		fields = append(fields[:1], fields[end+1:]...)
	}
	if len(fields) < 4 {
		return types.SourceEntry{}, false
	}
	entryType := types.PackageType(fields[0])
	if entryType != types.PackageTypeDeb && entryType != types.PackageTypeSrc {
		return types.SourceEntry{}, false
	}
	return types.SourceEntry{
		Type:       entryType,
		URL:        fields[1],
		Distro:     fields[2],
		Components: fields[3:],
	}, true
}

var _ ports.SourceListPort = SourcesFileAdapter{}

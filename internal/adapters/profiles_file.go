package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"debdepot/internal/ports"
	"debdepot/internal/types"
)

type ProfilesFileAdapter struct{}

type profilesFile struct {
	Profiles map[string]profileEntry `yaml:"profiles"`
}

type profileEntry struct {
	OS        string `yaml:"os"`
	Type      string `yaml:"type"`
	Distro    string `yaml:"distro"`
	Component string `yaml:"component"`
	Arch      string `yaml:"arch"`
}

func NewProfilesFileAdapter() ProfilesFileAdapter {
	return ProfilesFileAdapter{}
}

func (a ProfilesFileAdapter) LoadProfiles(path string) (map[string]types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profiles file not found").
			WithCause(err)
	}
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse profiles yaml").
			WithCause(err)
	}
	profiles := make(map[string]types.Profile, len(file.Profiles))
	for name, entry := range file.Profiles {
		profileType := types.PackageType(entry.Type)
		if entry.Type == "" {
			profileType = types.PackageTypeDeb
		}
		profiles[name] = types.Profile{
			OS:        entry.OS,
			Type:      profileType,
			Distro:    entry.Distro,
			Component: entry.Component,
			Arch:      entry.Arch,
		}
	}
	return profiles, nil
}

var _ ports.ProfileSourcePort = ProfilesFileAdapter{}

package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdepot/internal/core"
	"debdepot/internal/types"
)

// resolveProfile folds the scope layers into one validated profile.
// Precedence, lowest to highest: configuration defaults, the named
// profile entry, explicit overrides. OS and distro fall back to
// platform detection, type and component to deb/main.
func (s Service) resolveProfile(ctx context.Context, scope ProfileScope) (types.Profile, error) {
	profile := scope.Defaults

	name := strings.TrimSpace(scope.ProfileName)
	if name != "" {
		path := strings.TrimSpace(scope.ProfilesPath)
		if path == "" {
			return types.Profile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("profiles file is required when a profile name is given")
		}
		entries, err := s.Profiles.LoadProfiles(path)
		if err != nil {
			return types.Profile{}, err
		}
		entry, ok := entries[name]
		if !ok {
			return types.Profile{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("profile not found: no entry %q in %s", name, path))
		}
		profile = mergeProfile(profile, entry)
	}
	profile = mergeProfile(profile, scope.Overrides)

	if profile.OS == "" || profile.Distro == "" {
		info := s.Platform.Detect()
		if profile.OS == "" {
			profile.OS = info.ID
		}
		if profile.Distro == "" {
			profile.Distro = info.Codename
		}
	}
	if profile.Type == "" {
		profile.Type = types.PackageTypeDeb
	}
	if profile.Component == "" {
		profile.Component = "main"
	}

	if err := core.ValidateProfile(ctx, profile); err != nil {
		return types.Profile{}, err
	}
	log.Ctx(ctx).Debug().
		Str("os", profile.OS).
		Str("type", string(profile.Type)).
		Str("distro", profile.Distro).
		Str("component", profile.Component).
		Str("arch", profile.Arch).
		Msg("profile resolved")
	return profile, nil
}

func mergeProfile(base, over types.Profile) types.Profile {
	if over.OS != "" {
		base.OS = over.OS
	}
	if over.Type != "" {
		base.Type = over.Type
	}
	if over.Distro != "" {
		base.Distro = over.Distro
	}
	if over.Component != "" {
		base.Component = over.Component
	}
	if over.Arch != "" {
		base.Arch = over.Arch
	}
	return base
}

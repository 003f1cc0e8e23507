package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"debdepot/internal/types"
)

// ValidateProfile rejects a profile that cannot scope a cache query.
// Every coordinate must be present and concrete; a "*" placeholder left
// over from failed platform detection counts as absent.
func ValidateProfile(ctx context.Context, profile types.Profile) error {
	missing := []string{}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"os", profile.OS},
		{"type", string(profile.Type)},
		{"distro", profile.Distro},
		{"component", profile.Component},
		{"arch", profile.Arch},
	} {
		if field.value == "" || field.value == "*" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("profile not found: incomplete scope, missing %s", strings.Join(missing, ", ")))
	}
	log.Ctx(ctx).Debug().
		Str("os", profile.OS).
		Str("distro", profile.Distro).
		Str("component", profile.Component).
		Str("arch", profile.Arch).
		Msg("profile validated")
	return nil
}

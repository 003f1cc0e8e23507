package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"debdepot/internal/types"
)

func TestValidateProfileComplete(t *testing.T) {
	profile := types.Profile{
		OS:        "ubuntu",
		Type:      types.PackageTypeDeb,
		Distro:    "jammy",
		Component: "main",
		Arch:      "amd64",
	}
	require.NoError(t, ValidateProfile(context.Background(), profile))
}

func TestValidateProfileMissingFields(t *testing.T) {
	profile := types.Profile{OS: "ubuntu", Type: types.PackageTypeDeb}
	err := ValidateProfile(context.Background(), profile)
	require.ErrorContains(t, err, "profile not found")
	require.ErrorContains(t, err, "distro")
	require.ErrorContains(t, err, "component")
	require.ErrorContains(t, err, "arch")
}

func TestValidateProfileRejectsWildcards(t *testing.T) {
	profile := types.Profile{
		OS:        "ubuntu",
		Type:      types.PackageTypeDeb,
		Distro:    "*",
		Component: "main",
		Arch:      "amd64",
	}
	err := ValidateProfile(context.Background(), profile)
	require.ErrorContains(t, err, "profile not found")
	require.ErrorContains(t, err, "distro")
}

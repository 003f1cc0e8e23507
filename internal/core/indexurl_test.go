package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"debdepot/internal/types"
)

func TestPackagesIndexURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "base without trailing slash",
			url:  "http://archive.ubuntu.com/ubuntu",
			want: "http://archive.ubuntu.com/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		},
		{
			name: "base with trailing slash",
			url:  "http://archive.ubuntu.com/ubuntu/",
			want: "http://archive.ubuntu.com/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		},
		{
			name: "base with nested path",
			url:  "https://mirror.example.com/pub/ubuntu",
			want: "https://mirror.example.com/pub/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := types.Repository{URL: tt.url, Distro: "jammy", Component: "main"}
			got, err := PackagesIndexURL(repo, "amd64")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestContentsIndexURL(t *testing.T) {
	repo := types.Repository{URL: "http://archive.ubuntu.com/ubuntu", Distro: "jammy", Component: "universe"}
	got, err := ContentsIndexURL(repo, "arm64")
	require.NoError(t, err)
	require.Equal(t, "http://archive.ubuntu.com/ubuntu/dists/jammy/universe/Contents-arm64.gz", got)
}

func TestPackageFileURL(t *testing.T) {
	got, err := PackageFileURL("http://archive.ubuntu.com/ubuntu", "pool/main/c/curl/curl_7.81.0-1_amd64.deb")
	require.NoError(t, err)
	require.Equal(t, "http://archive.ubuntu.com/ubuntu/pool/main/c/curl/curl_7.81.0-1_amd64.deb", got)
}

func TestResolveRepoURLRejectsBadBase(t *testing.T) {
	repo := types.Repository{URL: "://not-a-url", Distro: "jammy", Component: "main"}
	_, err := PackagesIndexURL(repo, "amd64")
	require.ErrorContains(t, err, "invalid repository url")
}

package core

import (
	"fmt"
	"net/url"
	"path"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdepot/internal/types"
)

// PackagesIndexURL builds the Packages.gz index URL for a repository
// and architecture, resolving the dists path against the repository
// base per RFC 3986.
func PackagesIndexURL(repo types.Repository, arch string) (string, error) {
	rel := path.Join("dists", repo.Distro, repo.Component, "binary-"+arch, "Packages.gz")
	return resolveRepoURL(repo.URL, rel)
}

// ContentsIndexURL builds the Contents index URL for a repository and
// architecture. The Contents file lives beside the component's
// binary directories, one per architecture.
func ContentsIndexURL(repo types.Repository, arch string) (string, error) {
	rel := path.Join("dists", repo.Distro, repo.Component, "Contents-"+arch+".gz")
	return resolveRepoURL(repo.URL, rel)
}

// PackageFileURL resolves a package's Filename field against the
// repository base URL.
func PackageFileURL(baseURL, filename string) (string, error) {
	return resolveRepoURL(baseURL, filename)
}

func resolveRepoURL(baseURL, rel string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid repository url %q", baseURL)).
			WithCause(err)
	}
	// A base without a trailing slash would drop its last path segment
	// during resolution.
	if base.Path == "" || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid index path %q", rel)).
			WithCause(err)
	}
	return base.ResolveReference(ref).String(), nil
}

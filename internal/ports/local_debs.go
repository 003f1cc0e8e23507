package ports

// LocalDebsPort lists already-downloaded .deb payloads in a directory,
// keyed by file name with the on-disk size as value.
type LocalDebsPort interface {
	ListDebs(dir string) (map[string]int64, error)
}

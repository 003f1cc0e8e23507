package core

import (
	"sort"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"

	"debdepot/internal/types"
)

// versionCache memoizes parsed Debian versions so sorting a result set
// does not re-parse the same strings on every comparison.
type versionCache struct {
	deb map[string]debversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{deb: map[string]debversion.Version{}}
}

func (c *versionCache) debVersion(raw string) (debversion.Version, bool) {
	if v, ok := c.deb[raw]; ok {
		return v, true
	}
	v, err := debversion.NewVersion(raw)
	if err != nil {
		return debversion.Version{}, false
	}
	c.deb[raw] = v
	return v, true
}

// compare orders two version strings per Debian policy, falling back to
// lexicographic order when either side does not parse.
func (c *versionCache) compare(a, b string) int {
	va, okA := c.debVersion(a)
	vb, okB := c.debVersion(b)
	if okA && okB {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}

// SortPackageRows orders rows by name ascending, then version
// descending, then architecture ascending, so the newest release of
// each package leads its group.
func SortPackageRows(rows []types.PackageRow) {
	cache := newVersionCache()
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		if cmp := cache.compare(rows[i].Version, rows[j].Version); cmp != 0 {
			return cmp > 0
		}
		return rows[i].Arch < rows[j].Arch
	})
}

// highestVersionRow picks the row with the greatest Debian version,
// breaking ties on architecture ascending.
func highestVersionRow(rows []types.PackageRow) types.PackageRow {
	cache := newVersionCache()
	best := rows[0]
	for _, row := range rows[1:] {
		cmp := cache.compare(row.Version, best.Version)
		if cmp > 0 || (cmp == 0 && row.Arch < best.Arch) {
			best = row
		}
	}
	return best
}

package migrations

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Migration holds one schema revision: a numeric version, a human-readable
// name derived from the filename, and its up and down SQL.
type Migration struct {
	Version string
	Name    string
	UpSQL   string
	DownSQL string
}

// Source loads migrations, usually from an embedded filesystem.
type Source interface {
	Load() ([]Migration, error)
}

// FSSource reads migrations from a directory of paired files named
// <version>_<name>.up.sql and <version>_<name>.down.sql.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates an FSSource over dir within fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	return &FSSource{fsys: fsys, dir: dir}
}

// Load reads every migration file, pairs up and down scripts by version,
// validates that each version has an up script, and returns the migrations
// sorted by version.
func (s *FSSource) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", s.dir, err)
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, name, up, ok := parseFilename(entry.Name())
		if !ok {
			return nil, fmt.Errorf("unrecognized migration filename %s", entry.Name())
		}

		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		mig, found := byVersion[version]
		if !found {
			mig = &Migration{Version: version, Name: name}
			byVersion[version] = mig
		}
		if up {
			if mig.UpSQL != "" {
				return nil, fmt.Errorf("duplicate up migration for version %s", version)
			}
			mig.Name = name
			mig.UpSQL = string(data)
		} else {
			if mig.DownSQL != "" {
				return nil, fmt.Errorf("duplicate down migration for version %s", version)
			}
			mig.DownSQL = string(data)
		}
	}

	all := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.UpSQL == "" {
			return nil, fmt.Errorf("migration %s (%s) has no up script", mig.Version, mig.Name)
		}
		all = append(all, *mig)
	}

	sort.Slice(all, func(i, j int) bool {
		return versionLess(all[i].Version, all[j].Version)
	})

	return all, nil
}

// parseFilename splits <version>_<name>.up.sql / .down.sql. The version is
// the leading run of digits before the first underscore.
func parseFilename(filename string) (version, name string, up, ok bool) {
	var base string
	switch {
	case strings.HasSuffix(filename, ".up.sql"):
		base, up = strings.TrimSuffix(filename, ".up.sql"), true
	case strings.HasSuffix(filename, ".down.sql"):
		base, up = strings.TrimSuffix(filename, ".down.sql"), false
	default:
		return "", "", false, false
	}

	idx := strings.Index(base, "_")
	if idx <= 0 {
		return "", "", false, false
	}
	version, name = base[:idx], base[idx+1:]
	if name == "" {
		return "", "", false, false
	}
	if _, err := strconv.ParseInt(version, 10, 64); err != nil {
		return "", "", false, false
	}
	return version, name, up, true
}

// versionLess compares two versions numerically.
func versionLess(a, b string) bool {
	va, _ := strconv.ParseInt(a, 10, 64)
	vb, _ := strconv.ParseInt(b, 10, 64)
	return va < vb
}

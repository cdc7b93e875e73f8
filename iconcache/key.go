package iconcache

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/launcherkit/icons"
)

// ComponentKey identifies an activity of a package for one user profile.
type ComponentKey struct {
	Package string
	Class   string
	User    icons.UserHandle
}

// String returns the stable form "pkg/class#user".
func (k ComponentKey) String() string {
	return k.Package + "/" + k.Class + "#" + strconv.Itoa(int(k.User))
}

// ParseComponentKey parses the output of ComponentKey.String.
func ParseComponentKey(s string) (ComponentKey, error) {
	comp, user, ok := strings.Cut(s, "#")
	if !ok {
		return ComponentKey{}, fmt.Errorf("iconcache: component key %q has no user", s)
	}
	pkg, class, ok := strings.Cut(comp, "/")
	if !ok || pkg == "" {
		return ComponentKey{}, fmt.Errorf("iconcache: component key %q has no package", s)
	}
	u, err := strconv.Atoi(user)
	if err != nil {
		return ComponentKey{}, fmt.Errorf("iconcache: component key %q: %w", s, err)
	}
	return ComponentKey{Package: pkg, Class: class, User: icons.UserHandle(u)}, nil
}

func (k ComponentKey) hash() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.String()))
	return fmt.Sprintf("%016x", h.Sum64())
}

func iconBlobName(k ComponentKey) string { return "icons/" + k.hash() + ".bin" }

func lowResBlobName(k ComponentKey) string { return "lowres/" + k.hash() + ".bin" }

const manifestPrefix = "manifests/"

// manifestName is unique per writer so that a losing commit never touches
// the winner's manifest.
func manifestName(version uint64) string {
	return fmt.Sprintf("%s%020d-%s.json.zst", manifestPrefix, version, uuid.NewString())
}

// manifestVersion parses the version out of a manifest blob name.
func manifestVersion(name string) (uint64, bool) {
	rest, ok := strings.CutPrefix(name, manifestPrefix)
	if !ok || len(rest) < 20 {
		return 0, false
	}
	v, err := strconv.ParseUint(rest[:20], 10, 64)
	return v, err == nil
}

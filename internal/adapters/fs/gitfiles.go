package fs

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
)

// gitTrackedFiles asks git for the set of files it would track under root
// (tracked plus untracked-but-not-ignored). The second return is false when
// git is unavailable or the command fails; callers then fall back to a full
// scan.
func gitTrackedFiles(ctx context.Context, root string) (map[string]struct{}, bool) {
	cmd := exec.CommandContext(ctx, "git", "-C", root, "ls-files", "-co", "--exclude-standard", "-z")
	out, err := cmd.Output()
	if err != nil {
		return nil, false
	}

	set := make(map[string]struct{})
	for _, entry := range strings.Split(string(out), "\x00") {
		if entry == "" {
			continue
		}
		set[filepath.ToSlash(entry)] = struct{}{}
	}
	return set, true
}

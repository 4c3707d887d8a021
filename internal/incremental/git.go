package incremental

import (
	"os/exec"
	"strings"
)

// parseNameStatusOutput parses `git diff --name-status` output into a
// ChangeSet. Format per line: "<status>\t<path>", renames as
// "R<score>\t<old>\t<new>".
func parseNameStatusOutput(output string) ChangeSet {
	var cs ChangeSet
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 2 {
			continue
		}
		status := parts[0]
		path := parts[1]

		switch status[0] {
		case 'A':
			cs.Added = append(cs.Added, path)
		case 'M':
			cs.Modified = append(cs.Modified, path)
		case 'D':
			cs.Deleted = append(cs.Deleted, path)
		case 'R':
			cs.Deleted = append(cs.Deleted, path)
			if len(parts) >= 3 {
				cs.Added = append(cs.Added, parts[2])
			}
		default:
			cs.Modified = append(cs.Modified, path)
		}
	}
	return cs
}

// gitDiffNameStatus runs `git diff --name-status <args...>` in root and
// parses the result. A failing git invocation (no HEAD yet, not a repo,
// unknown commit, etc.) yields an empty ChangeSet rather than an error, and
// detectChanges treats that empty result as "no changes": it does not switch
// to mtime-based detection when a git diff fails.
func gitDiffNameStatus(root string, args ...string) ChangeSet {
	cmdArgs := append([]string{"diff", "--name-status"}, args...)
	cmd := exec.Command("git", cmdArgs...)
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return ChangeSet{}
	}
	return parseNameStatusOutput(string(out))
}

// gitUntrackedFiles runs `git ls-files --others --exclude-standard` in
// root, returning the untracked relative paths it reports.
func gitUntrackedFiles(root string) []string {
	cmd := exec.Command("git", "ls-files", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

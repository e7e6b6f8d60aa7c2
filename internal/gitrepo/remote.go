package gitrepo

import (
	"fmt"
	"strings"
)

// OriginOwnerRepo resolves the owner and repository name from the origin
// remote, for issue lookups.
func (r *Repository) OriginOwnerRepo() (string, string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	return parseOwnerRepo(urls[0])
}

// parseOwnerRepo extracts owner and repo from an https or ssh remote URL.
func parseOwnerRepo(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, ".git")

	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	}
	if idx := strings.Index(trimmed, "@"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.Replace(trimmed, ":", "/", 1)

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q", url)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

package metadata

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	manifestFiles = []string{"requirements.txt", "Pipfile", "setup.py"}
	licenseFiles  = []string{"LICENSE", "LICENSE.txt", "LICENSE.md"}

	remoteURLPattern = regexp.MustCompile(`url = (.+)`)
)

// Metadata holds auxiliary project facts read independently of source
// parsing. Absent files are not errors; the corresponding fields stay
// empty.
type Metadata struct {
	Requirements []string // raw dependency lines, manifests concatenated in order
	License      string   // full license text, "" when no license file exists
	HasGit       bool
	RemoteURL    string
}

// Collect reads dependency manifests, the license file and version control
// facts from the project root.
func Collect(root string) *Metadata {
	return &Metadata{
		Requirements: parseRequirements(root),
		License:      licenseText(root),
		HasGit:       hasGit(root),
		RemoteURL:    remoteURL(root),
	}
}

// parseRequirements concatenates dependency lines from every manifest that
// exists, in manifest order, skipping blank lines and comments.
func parseRequirements(root string) []string {
	var requirements []string

	for _, name := range manifestFiles {
		f, err := os.Open(filepath.Join(root, name))
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			requirements = append(requirements, line)
		}
		f.Close()
	}

	return requirements
}

// licenseText returns the content of the first license file that exists.
func licenseText(root string) string {
	for _, name := range licenseFiles {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		return string(data)
	}
	return ""
}

func hasGit(root string) bool {
	info, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil && info.IsDir()
}

// remoteURL scans the version control config for the first "url = " entry.
// No match leaves the remote unset.
func remoteURL(root string) string {
	data, err := os.ReadFile(filepath.Join(root, ".git", "config"))
	if err != nil {
		return ""
	}
	match := remoteURLPattern.FindSubmatch(data)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(string(match[1]))
}

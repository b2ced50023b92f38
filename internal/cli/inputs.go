package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

// documentExtensions are matched when a directory is given as input.
var documentExtensions = []string{"xmi", "uml"}

// expandInputs turns file paths, directories and doublestar patterns into
// the list of documents to check. Literal paths must exist; a pattern that
// matches nothing is only an error when no argument matched anything.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	var patterns []string
	for _, arg := range args {
		if !containsGlob(arg) {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, apperrors.MissingInputFile(arg)
			}
			if !info.IsDir() {
				add(arg)
				continue
			}
			arg = filepath.Join(arg, "**", "*.{"+strings.Join(documentExtensions, ",")+"}")
		}

		patterns = append(patterns, arg)
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, apperrors.NewArgumentError(fmt.Sprintf("invalid pattern %q: %v", arg, err))
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, apperrors.NoInputsMatched(patterns)
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

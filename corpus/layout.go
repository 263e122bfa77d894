// Package corpus describes the on-disk layout of the Georgia rules corpus:
// statute titles under statutes/title-N/ and administrative rules under
// regulations/.
package corpus

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Top-level corpus directories.
const (
	StatutesDir    = "statutes"
	RegulationsDir = "regulations"
)

// Kind classifies a corpus file by its top-level directory.
type Kind string

// Corpus file kinds.
const (
	KindStatute    Kind = "statute"
	KindRegulation Kind = "regulation"
	KindUnknown    Kind = "unknown"
)

// Titles describes the statute titles the corpus carries.
var Titles = map[int]string{
	48: "Revenue and Taxation",
	49: "Social Services, Public Assistance, and Human Resources",
}

// TitleDescription returns the subject of a statute title.
func TitleDescription(title int) (string, bool) {
	d, ok := Titles[title]
	return d, ok
}

// TitleDirName returns the directory name for a statute title.
func TitleDirName(title int) string {
	return fmt.Sprintf("title-%d", title)
}

// Placement is where a file sits in the taxonomy.
type Placement struct {
	Kind Kind
	// Title is the statute title named by the directory, or 0.
	Title int
}

// Classify returns the placement of a path relative to the corpus root.
// Both slash and OS separators are accepted.
func Classify(rel string) Placement {
	parts := strings.Split(path.Clean(filepath.ToSlash(rel)), "/")
	switch parts[0] {
	case StatutesDir:
		// statutes/title-N/<file>, possibly nested deeper
		if len(parts) >= 3 {
			if n, ok := parseTitleDir(parts[1]); ok {
				return Placement{Kind: KindStatute, Title: n}
			}
		}
		return Placement{Kind: KindStatute}
	case RegulationsDir:
		return Placement{Kind: KindRegulation}
	default:
		return Placement{Kind: KindUnknown}
	}
}

func parseTitleDir(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "title-")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Layout resolves corpus paths under a root directory.
type Layout struct {
	Root string
}

// NewLayout creates a layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// StatuteDir returns the directory holding a statute title.
func (l Layout) StatuteDir(title int) string {
	return filepath.Join(l.Root, StatutesDir, TitleDirName(title))
}

// StatutePath returns the path of a file inside a statute title directory.
func (l Layout) StatutePath(title int, name string) string {
	return filepath.Join(l.StatuteDir(title), name)
}

// RegulationsPath returns the regulations directory.
func (l Layout) RegulationsPath() string {
	return filepath.Join(l.Root, RegulationsDir)
}

// Rel returns p relative to the corpus root in slash form.
func (l Layout) Rel(p string) (string, error) {
	rel, err := filepath.Rel(l.Root, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

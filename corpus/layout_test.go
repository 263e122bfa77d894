package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		rel  string
		want Placement
	}{
		{"statutes/title-48/us-ga-title-48.akn.xml", Placement{Kind: KindStatute, Title: 48}},
		{"statutes/title-49/chapter-4/49-4-1.xml", Placement{Kind: KindStatute, Title: 49}},
		{"statutes/loose.xml", Placement{Kind: KindStatute}},
		{"statutes/title-x/doc.xml", Placement{Kind: KindStatute}},
		{"statutes/title-0/doc.xml", Placement{Kind: KindStatute}},
		{"statutes/title-48", Placement{Kind: KindStatute}},
		{"regulations/560-7-8.xml", Placement{Kind: KindRegulation}},
		{"regulations/dhs/290-1-1.xml", Placement{Kind: KindRegulation}},
		{"README.md", Placement{Kind: KindUnknown}},
		{"./statutes/title-48/a.xml", Placement{Kind: KindStatute, Title: 48}},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rel))
		})
	}
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/corpus")

	assert.Equal(t, filepath.Join("/corpus", "statutes", "title-48"), l.StatuteDir(48))
	assert.Equal(t, filepath.Join("/corpus", "statutes", "title-49", "x.xml"), l.StatutePath(49, "x.xml"))
	assert.Equal(t, filepath.Join("/corpus", "regulations"), l.RegulationsPath())

	rel, err := l.Rel(l.StatutePath(48, "doc.xml"))
	require.NoError(t, err)
	assert.Equal(t, "statutes/title-48/doc.xml", rel)
	assert.Equal(t, Placement{Kind: KindStatute, Title: 48}, Classify(rel))
}

func TestTitleDescription(t *testing.T) {
	d, ok := TitleDescription(48)
	assert.True(t, ok)
	assert.Equal(t, "Revenue and Taxation", d)

	_, ok = TitleDescription(1)
	assert.False(t, ok)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statutes", "title-48", "doc.xml")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "<doc/>")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<doc/>", string(data))
}

func TestWriteFileAtomic_FailureKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	boom := errors.New("boom")
	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = fmt.Fprint(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	// The temp file was cleaned up
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

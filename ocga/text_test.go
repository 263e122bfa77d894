package ocga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraphs become lines",
			input:    "<P>One.</P><P>Two.</P>",
			expected: "One.\nTwo.",
		},
		{
			name:     "line breaks",
			input:    "first<BR>second<br/>third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "formatting tags dropped",
			input:    `<STRONG>Bold</STRONG> and <B>b</B> and <FONT color="red">red</FONT>`,
			expected: "Bold and b and red",
		},
		{
			name:     "entities decoded",
			input:    "&quot;Code&quot; &amp; &#167; 1",
			expected: `"Code" & § 1`,
		},
		{
			name:     "blank line runs collapse",
			input:    "a<BR>\n \n\n<BR>b",
			expected: "a\n\nb",
		},
		{
			name:     "trimmed",
			input:    "  <P>  padded  </P>  ",
			expected: "padded",
		},
		{
			name:     "normalized to NFC",
			input:    "cafe\u0301",
			expected: "café",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanHTML(tt.input))
		})
	}
}

func TestSectionNumber(t *testing.T) {
	tests := []struct {
		caption  string
		expected string
	}{
		{"48-1-2", "48-1-2"},
		{"§ 48-7-20.1", "48-7-20.1"},
		{"48-7-20.1.", "48-7-20.1"},
		{"Article 1", "Article-1"},
		{"Part 2.1", "Part-2-1"},
	}

	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.expected, SectionNumber(tt.caption))
		})
	}
}

func TestIsSectionCaption(t *testing.T) {
	assert.True(t, IsSectionCaption("48-1-2"))
	assert.True(t, IsSectionCaption("O.C.G.A. 49-4-150"))
	assert.False(t, IsSectionCaption("CHAPTER 1"))
	assert.False(t, IsSectionCaption("48-1"))
}

func TestChapterOf(t *testing.T) {
	assert.Equal(t, "7", ChapterOf("48-7-20"))
	assert.Equal(t, "", ChapterOf("orphan"))
}

func TestTitleNumberFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		number int
		ok     bool
	}{
		{"gov.ga.ocga.2018.title.48.xml", 48, true},
		{"gov.ga.ocga.2018.title.07.xml", 7, true},
		{"gov.ga.ocga.2018.title.xml", 0, false},
		{"gov.ga.ocga.2018.title.48.xml.bak", 0, false},
		{"title.0.xml", 0, false},
		{"gov.ga.ocga.2018.title.99999999999999999999999.xml", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := TitleNumberFromFilename(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.number, n)
		})
	}
}

func TestParseSubsections(t *testing.T) {
	t.Run("no markers", func(t *testing.T) {
		assert.Empty(t, ParseSubsections("Plain section text."))
	})

	t.Run("letters only", func(t *testing.T) {
		subs := ParseSubsections("(a) First rule. (b) Second rule.")
		require.Len(t, subs, 2)
		assert.Equal(t, Subsection{Identifier: "a", Text: "First rule."}, subs[0])
		assert.Equal(t, Subsection{Identifier: "b", Text: "Second rule."}, subs[1])
	})

	t.Run("numbered children", func(t *testing.T) {
		subs := ParseSubsections("(a) The term includes: (1) Wages; (2) Salaries; and (3) Tips.")
		require.Len(t, subs, 1)
		assert.Equal(t, "The term includes:", subs[0].Text)
		require.Len(t, subs[0].Children, 3)
		assert.Equal(t, "Wages;", subs[0].Children[0].Text)
		assert.Equal(t, "Salaries; and", subs[0].Children[1].Text)
		assert.Equal(t, "3", subs[0].Children[2].Identifier)
		assert.Equal(t, "Tips.", subs[0].Children[2].Text)
	})

	t.Run("preamble dropped", func(t *testing.T) {
		subs := ParseSubsections("As used in this chapter: (a) Term means x.")
		require.Len(t, subs, 1)
		assert.Equal(t, "a", subs[0].Identifier)
	})

	t.Run("non-breaking space after marker", func(t *testing.T) {
		subs := ParseSubsections("(a)\u00a0First.\n(b)\u00a0Second.")
		require.Len(t, subs, 2)
		assert.Equal(t, "First.", subs[0].Text)
		assert.Equal(t, "Second.", subs[1].Text)
	})

	t.Run("glued marker stays in child text", func(t *testing.T) {
		subs := ParseSubsections("(a) Scope: (1) as provided in(b)of this Code section")
		require.Len(t, subs, 1)
		require.Len(t, subs[0].Children, 1)
		assert.Equal(t, "as provided in(b)of this Code section", subs[0].Children[0].Text)
	})

	t.Run("marker without trailing space is not a split point", func(t *testing.T) {
		subs := ParseSubsections("(a) Refers to subsection(b)of this section.")
		require.Len(t, subs, 1)
		assert.Equal(t, "Refers to subsection(b)of this section.", subs[0].Text)
	})

	t.Run("cross-reference to earlier subsection", func(t *testing.T) {
		subs := ParseSubsections("(a) A tax is imposed. (b) Except as provided in subsection (a) of this Code section, (1) first; (2) second.")
		require.Len(t, subs, 2)
		assert.Equal(t, "a", subs[0].Identifier)
		assert.Equal(t, "A tax is imposed.", subs[0].Text)
		assert.Equal(t, "b", subs[1].Identifier)
		assert.Equal(t, "Except as provided in subsection (a) of this Code section,", subs[1].Text)
		require.Len(t, subs[1].Children, 2)
		assert.Equal(t, Subsection{Identifier: "1", Text: "first;"}, subs[1].Children[0])
		assert.Equal(t, Subsection{Identifier: "2", Text: "second."}, subs[1].Children[1])
	})

	t.Run("out of sequence markers are text", func(t *testing.T) {
		subs := ParseSubsections("(a) See (c) below. (b) Applies to (3) cases. (c) Done.")
		require.Len(t, subs, 3)
		assert.Equal(t, "See (c) below.", subs[0].Text)
		assert.Equal(t, "Applies to (3) cases.", subs[1].Text)
		assert.Empty(t, subs[1].Children)
		assert.Equal(t, "Done.", subs[2].Text)
	})

	t.Run("paragraph citation is not a child", func(t *testing.T) {
		subs := ParseSubsections("(a) Terms: (1) Income; (2) As in paragraph (3) of subsection (b) of this Code section; (3) Gains. (b) Next.")
		require.Len(t, subs, 2)
		require.Len(t, subs[0].Children, 3)
		assert.Equal(t, "As in paragraph (3) of subsection (b) of this Code section;", subs[0].Children[1].Text)
		assert.Equal(t, "Gains.", subs[0].Children[2].Text)
		assert.Equal(t, "Next.", subs[1].Text)
	})

	t.Run("section reference with letter suffix", func(t *testing.T) {
		subs := ParseSubsections("(a) Under Code Section 48-7-20 (b) rules. (b) Next.")
		require.Len(t, subs, 2)
		assert.Equal(t, "Under Code Section 48-7-20 (b) rules.", subs[0].Text)
	})
}

func TestIntro(t *testing.T) {
	assert.Equal(t, "As used in this title:", Intro("As used in this title: (a) One."))
	assert.Equal(t, "", Intro("(a) Starts immediately. (b) Next."))
	assert.Equal(t, "", Intro("No divisions at all."))
	assert.Equal(t, "Subject to subsection (a) of Code Section 48-1-2:",
		Intro("Subject to subsection (a) of Code Section 48-1-2: (a) One."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hé", Truncate("héllo", 2))
	assert.Equal(t, "héllo", Truncate("héllo", 5))
	assert.Equal(t, "héllo", Truncate("héllo", 10))
	assert.Equal(t, "héllo", Truncate("héllo", 0))
	assert.Equal(t, "", Truncate("", 3))
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, NaturalLess("2", "10"))
	assert.False(t, NaturalLess("10", "2"))
	assert.True(t, NaturalLess("7", "7A"))
	assert.True(t, NaturalLess("7A", "8"))
	assert.False(t, NaturalLess("3", "3"))
}

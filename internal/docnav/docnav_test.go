package docnav

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Main Title
Some introduction text

## Section 1
Content of section 1

## Section 2
Content of section 2

### Subsection 2.1
Content of subsection 2.1
#### Deep Section
Very deep content

### Subsection 2.2
Content of subsection 2.2

## Section 3
Content of section 3
`

func TestTitlesAtLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  []string
	}{
		{"level 1", 1, []string{"Main Title"}},
		{"level 2", 2, []string{"Section 1", "Section 2", "Section 3"}},
		{"level 3", 3, []string{"Subsection 2.1", "Subsection 2.2"}},
		{"level 4", 4, []string{"Deep Section"}},
		{"level without headings", 5, []string{}},
		{"level zero", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitlesAtLevel(sampleDoc, tt.level))
		})
	}
}

func TestNavigate_DeepPath(t *testing.T) {
	path := []string{"Main Title", "Section 2", "Subsection 2.1", "Deep Section"}

	res := Navigate(sampleDoc, path, 0)

	require.True(t, res.Success, "navigation should succeed: %s", res.Message)
	assert.Equal(t, 4, res.CurrentLevel)
	assert.Equal(t, 0, res.FailedLevel)
	assert.Equal(t, []int{StatusFound, StatusFound, StatusFound, StatusFound}, res.StatusList)
	assert.Equal(t, path, res.QueryPath)
	assert.Equal(t, "Found: Main Title > Section 2 > Subsection 2.1 > Deep Section", res.Message)
	assert.Equal(t, []string{"Deep Section"}, res.AvailableTitles)
	assert.Equal(t, []string{}, res.NextLevelTitles)

	// The extracted section keeps its parent headings for context and
	// drops blank lines.
	want := strings.Join([]string{
		"# Main Title",
		"Some introduction text",
		"## Section 2",
		"Content of section 2",
		"### Subsection 2.1",
		"Content of subsection 2.1",
		"#### Deep Section",
		"Very deep content",
	}, "\n")
	assert.Equal(t, want, res.Content)
	assert.Equal(t, utf8.RuneCountInString(want), res.ContentLength)
}

func TestNavigate_TruncatesAtLimit(t *testing.T) {
	path := []string{"Main Title", "Section 2", "Subsection 2.1", "Deep Section"}

	full := Navigate(sampleDoc, path, 0)
	res := Navigate(sampleDoc, path, 50)

	require.True(t, res.Success)
	assert.True(t, strings.HasSuffix(res.Content, "... (content truncated)"))
	assert.Equal(t, 50, utf8.RuneCountInString(res.Content))
	// ContentLength reports the size before truncation.
	assert.Equal(t, full.ContentLength, res.ContentLength)
}

func TestNavigate_MissBelowTopLevel(t *testing.T) {
	res := Navigate(sampleDoc, []string{"Main Title", "Section 2", "Wrong Section"}, 30)

	require.False(t, res.Success)
	assert.Equal(t, 3, res.CurrentLevel)
	assert.Equal(t, 3, res.FailedLevel)
	assert.Equal(t, []int{StatusFound, StatusFound, StatusMiss}, res.StatusList)
	assert.Equal(t, "Failed at level 3: Title 'Wrong Section' not found at level 3", res.Message)
	// The caller gets the titles that were actually available where the
	// match failed, plus the surrounding content for orientation.
	assert.Equal(t, []string{"Subsection 2.1", "Subsection 2.2"}, res.AvailableTitles)
	assert.Equal(t, []string{}, res.NextLevelTitles)
	assert.Equal(t, 30, utf8.RuneCountInString(res.Content))
	assert.True(t, strings.HasSuffix(res.Content, "... (content truncated)"))
}

func TestNavigate_MissAtFirstLevel(t *testing.T) {
	res := Navigate(sampleDoc, []string{"Wrong Title", "Section 2", "Subsection 2.1"}, 0)

	require.False(t, res.Success)
	assert.Equal(t, 1, res.CurrentLevel)
	assert.Equal(t, 1, res.FailedLevel)
	// Levels after the miss are never attempted.
	assert.Equal(t, []int{StatusMiss, StatusNotAttempted, StatusNotAttempted}, res.StatusList)
	assert.Equal(t, []string{"Main Title"}, res.AvailableTitles)
	assert.Equal(t, sampleDoc, res.Content)
	assert.Equal(t, utf8.RuneCountInString(sampleDoc), res.ContentLength)
}

func TestNavigate_EmptyPath(t *testing.T) {
	res := Navigate(sampleDoc, nil, 0)

	require.True(t, res.Success)
	assert.Equal(t, 0, res.CurrentLevel)
	assert.Equal(t, sampleDoc, res.Content)
	assert.Equal(t, []int{}, res.StatusList)
	assert.Equal(t, []string{}, res.AvailableTitles)
	assert.Equal(t, []string{"Main Title"}, res.NextLevelTitles)
}

func TestNavigate_SectionWithoutSubsections(t *testing.T) {
	res := Navigate(sampleDoc, []string{"Main Title", "Section 1"}, 0)

	require.True(t, res.Success)
	assert.Equal(t, []string{}, res.NextLevelTitles)
	want := strings.Join([]string{
		"# Main Title",
		"Some introduction text",
		"## Section 1",
		"Content of section 1",
	}, "\n")
	assert.Equal(t, want, res.Content)
}

func TestTruncate_ReservesRoomForSuffix(t *testing.T) {
	content := strings.Repeat("x", 100)

	text, originalLen := truncate(content, 40)

	assert.Equal(t, 100, originalLen)
	assert.Equal(t, 40, utf8.RuneCountInString(text))
	assert.True(t, strings.HasSuffix(text, "... (content truncated)"))

	// No cap means no change.
	text, originalLen = truncate(content, 0)
	assert.Equal(t, content, text)
	assert.Equal(t, 100, originalLen)

	// Content already under the cap is untouched.
	text, _ = truncate("short", 40)
	assert.Equal(t, "short", text)
}

package filesearch

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newSearcher(seed uint64) *Searcher {
	return New(
		WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestSearchShape(t *testing.T) {
	t.Parallel()

	namePattern := regexp.MustCompile(`^[A-Za-z_]+_\d{4}-\d{2}-\d{2}\.(pdf|jpeg|dicom|png|docx)$`)
	oldest := fixedNow.AddDate(0, 0, -maxDaysAgo)

	for seed := range uint64(200) {
		res := newSearcher(seed).Search("lab results")

		assert.Equal(t, "lab results", res.Query)
		require.GreaterOrEqual(t, len(res.Results), MinResults)
		require.LessOrEqual(t, len(res.Results), MaxResults)

		assert.True(t, slices.IsSortedFunc(res.Results, func(a, b File) int {
			return b.RelevanceScore - a.RelevanceScore
		}), "results must be sorted by descending relevance")

		for _, f := range res.Results {
			assert.GreaterOrEqual(t, f.RelevanceScore, MinRelevance)
			assert.LessOrEqual(t, f.RelevanceScore, MaxRelevance)
			assert.GreaterOrEqual(t, f.Size, int64(mib/2))
			assert.LessOrEqual(t, f.Size, int64(15*mib))
			assert.Contains(t, Categories, f.Category)
			assert.Contains(t, FileTypes, f.Type)
			assert.Regexp(t, namePattern, f.Name)

			require.GreaterOrEqual(t, len(f.Citations), minCitations)
			require.LessOrEqual(t, len(f.Citations), maxCitations)
			assert.Len(t, slices.Compact(slices.Sorted(slices.Values(f.Citations))), len(f.Citations), "citations must be distinct")
			assert.Subset(t, sampleCitations, f.Citations)

			uploaded, err := time.Parse("Jan 2, 2006", f.UploadDate)
			require.NoError(t, err)
			assert.False(t, uploaded.Before(oldest.Truncate(24*time.Hour)))
			assert.False(t, uploaded.After(fixedNow))
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, newSearcher(7).Search("x"), newSearcher(7).Search("x"))
}

func TestSearchIDs(t *testing.T) {
	t.Parallel()

	res := newSearcher(1).Search("x")
	ids := map[string]bool{}
	for _, f := range res.Results {
		assert.Regexp(t, `^file-\d+-\d$`, f.ID)
		ids[f.ID] = true
	}
	assert.Len(t, ids, len(res.Results))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	res := Result{Query: "lab results", Results: make([]File, 4)}
	assert.Equal(t, `Found 4 files matching query: "lab results"`, res.Summary())
}

func TestSearchDefaultSource(t *testing.T) {
	t.Parallel()

	res := New().Search("anything")
	assert.GreaterOrEqual(t, len(res.Results), MinResults)
	assert.LessOrEqual(t, len(res.Results), MaxResults)
}

func TestCitationsDefaultSource(t *testing.T) {
	t.Parallel()

	for range 50 {
		got := New().citations()
		require.GreaterOrEqual(t, len(got), minCitations)
		require.LessOrEqual(t, len(got), maxCitations)
		assert.Len(t, slices.Compact(slices.Sorted(slices.Values(got))), len(got))
		assert.Subset(t, sampleCitations, got)
	}
}

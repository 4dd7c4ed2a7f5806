// Package filesearch produces synthetic search results over a fictional
// archive of medical records. Nothing is indexed: every search draws a fresh
// random result set.
package filesearch

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

const (
	MinResults   = 3
	MaxResults   = 8
	MinRelevance = 65
	MaxRelevance = 99

	minCitations = 2
	maxCitations = 4
	maxDaysAgo   = 730
	mib          = 1024 * 1024
)

var Categories = []string{
	"Lab Results",
	"Diagnostic Reports",
	"Medical Imaging",
	"Prescriptions",
	"Consultation Notes",
	"Vaccination Records",
}

var FileTypes = []string{"PDF", "JPEG", "DICOM", "PNG", "DOCX"}

var sampleCitations = []string{
	"Blood glucose level: 95 mg/dL (normal range: 70-100 mg/dL)",
	"White blood cell count within normal parameters",
	"Cholesterol levels: HDL 58 mg/dL, LDL 102 mg/dL",
	"X-ray shows no signs of fracture or abnormality",
	"Patient reports decreased symptoms after treatment",
	"Heart rate: 72 bpm, Blood pressure: 120/80 mmHg",
	"CT scan reveals normal tissue density",
	"No adverse reactions to prescribed medication",
	"Follow-up recommended in 3 months",
	"Hemoglobin A1C: 5.4% (non-diabetic range)",
	"Liver function tests within normal limits",
	"Thyroid stimulating hormone (TSH) levels normal",
	"Bone density scan shows healthy bone mass",
	"ECG reveals regular sinus rhythm",
	"MRI scan indicates no abnormal findings",
}

type File struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Size           int64    `json:"size"`
	UploadDate     string   `json:"uploadDate"`
	Category       string   `json:"category"`
	Citations      []string `json:"citations"`
	RelevanceScore int      `json:"relevanceScore"`
}

type Result struct {
	Query   string `json:"query"`
	Results []File `json:"results"`
}

// Summary is the one-line description stored in the conversation.
func (r Result) Summary() string {
	return fmt.Sprintf("Found %d files matching query: %q", len(r.Results), r.Query)
}

type Option func(*Searcher)

// WithRand fixes the random source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		s.rnd = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		s.now = now
	}
}

// Searcher is not safe for concurrent use when built WithRand, since
// math/rand sources are not synchronized.
type Searcher struct {
	rnd *rand.Rand
	now func() time.Time
}

func New(opts ...Option) *Searcher {
	s := &Searcher{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) intN(n int) int {
	if s.rnd == nil {
		return rand.IntN(n)
	}
	return s.rnd.IntN(n)
}

func (s *Searcher) perm(n int) []int {
	if s.rnd == nil {
		return rand.Perm(n)
	}
	return s.rnd.Perm(n)
}

func (s *Searcher) float() float64 {
	if s.rnd == nil {
		return rand.Float64()
	}
	return s.rnd.Float64()
}

// Search returns between MinResults and MaxResults files ordered by
// descending relevance. The query only shows up in the summary.
func (s *Searcher) Search(query string) Result {
	now := s.now()
	n := MinResults + s.intN(MaxResults-MinResults+1)

	files := make([]File, 0, n)
	for i := range n {
		category := Categories[s.intN(len(Categories))]
		fileType := FileTypes[s.intN(len(FileTypes))]
		uploaded := now.AddDate(0, 0, -s.intN(maxDaysAgo))

		files = append(files, File{
			ID:             fmt.Sprintf("file-%d-%d", now.UnixMilli(), i),
			Name:           fmt.Sprintf("%s_%s.%s", strings.Join(strings.Fields(category), "_"), uploaded.UTC().Format(time.DateOnly), strings.ToLower(fileType)),
			Type:           fileType,
			Size:           int64((s.float()*14.5 + 0.5) * mib),
			UploadDate:     uploaded.Format("Jan 2, 2006"),
			Category:       category,
			Citations:      s.citations(),
			RelevanceScore: MinRelevance + s.intN(MaxRelevance-MinRelevance+1),
		})
	}

	slices.SortStableFunc(files, func(a, b File) int {
		return b.RelevanceScore - a.RelevanceScore
	})

	return Result{Query: query, Results: files}
}

func (s *Searcher) citations() []string {
	n := minCitations + s.intN(maxCitations-minCitations+1)
	perm := s.perm(len(sampleCitations))

	out := make([]string, n)
	for i := range n {
		out[i] = sampleCitations[perm[i]]
	}
	return out
}

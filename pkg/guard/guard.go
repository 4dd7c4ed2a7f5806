// Package guard screens user queries for requests that look like attempts to
// pull sensitive or bulk data out of the enterprise systems.
package guard

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultThreshold is the risk score at which a query is blocked.
const DefaultThreshold = 0.8

// Refusal is the assistant reply to a blocked query.
const Refusal = "I can't help with that request because it was flagged by the security policy. Please narrow it down to the information you need for your work."

var (
	securityThreats = []string{"hack", "crack", "exploit", "bypass", "inject", "malware", "virus", "phishing", "steal", "leak"}

	suspiciousRequests = []string{"all passwords", "admin access", "backdoor", "root access", "dump database", "full database", "entire system"}

	redFlags = []*regexp.Regexp{
		regexp.MustCompile(`\ball\s+(employees|users|passwords|data)\b`),
		regexp.MustCompile(`\bentire\s+(database|system|company)\b`),
		regexp.MustCompile(`\bdump\s+(data|database|table)\b`),
		regexp.MustCompile(`\bfull\s+(access|list|dump)\b`),
		regexp.MustCompile(`\bshow\s+(all|every|entire)\b`),
		regexp.MustCompile(`\bgive\s+me\s+(all|everything|complete)\b`),
		regexp.MustCompile(`\bpassword\s+(list|file|database)\b`),
		regexp.MustCompile(`\badmin\s+(credentials|password|access)\b`),
		regexp.MustCompile(`\bunauthorized\s+access\b`),
		regexp.MustCompile(`\bbypass\s+(security|authentication)\b`),
	}

	broadQuantifiers  = []string{"all", "every", "entire", "complete", "full", "total", "everything"}
	sensitiveKeywords = []string{"password", "salary", "ssn", "social security", "bank", "credit card", "personal"}
	technicalKeywords = []string{"database", "server", "admin", "root", "system", "config", "dump", "export"}
	pressureWords     = []string{"urgent", "immediately", "asap", "emergency", "critical", "now"}
)

type Verdict struct {
	Blocked bool              `json:"blocked"`
	Reason  string            `json:"reason,omitempty"`
	Risk    float64           `json:"risk"`
	Details map[string]string `json:"details,omitempty"`
}

type Guard struct {
	threshold float64
}

// New returns a guard blocking queries whose risk reaches threshold.
// A non-positive threshold selects DefaultThreshold.
func New(threshold float64) *Guard {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Guard{threshold: threshold}
}

func (g *Guard) Check(query string) Verdict {
	q := strings.ToLower(query)
	risk, details := Risk(q)
	v := Verdict{Risk: risk, Details: details}

	for _, kw := range securityThreats {
		if containsWord(q, kw) {
			v.Blocked, v.Reason = true, fmt.Sprintf("security keyword %q", kw)
			return v
		}
	}
	for _, kw := range suspiciousRequests {
		if containsWord(q, kw) {
			v.Blocked, v.Reason = true, fmt.Sprintf("suspicious request %q", kw)
			return v
		}
	}
	for _, re := range redFlags {
		if m := re.FindString(q); m != "" {
			v.Blocked, v.Reason = true, fmt.Sprintf("red flag %q", m)
			return v
		}
	}
	if risk >= g.threshold {
		v.Blocked, v.Reason = true, fmt.Sprintf("risk score %.2f", risk)
	}
	return v
}

// Risk scores a query between 0 and 1. Keywords match as substrings.
func Risk(query string) (float64, map[string]string) {
	q := strings.ToLower(query)
	details := map[string]string{}
	var score float64

	if n := countSubstrings(q, broadQuantifiers); n >= 2 {
		score += 0.3
		details["overly_broad"] = fmt.Sprintf("Multiple broad quantifiers: %d", n)
	}
	if n := countSubstrings(q, sensitiveKeywords); n > 0 {
		score += 0.2 * float64(n)
		details["sensitive_data"] = fmt.Sprintf("Sensitive keywords: %d", n)
	}
	if n := countSubstrings(q, technicalKeywords); n >= 2 {
		score += 0.25
		details["technical_focus"] = fmt.Sprintf("Technical keywords: %d", n)
	}
	if n := len(strings.Fields(q)); n > 20 {
		score += 0.1
		details["query_length"] = fmt.Sprintf("Long query: %d words", n)
	}
	if n := countSubstrings(q, pressureWords); n > 0 {
		score += 0.15
		details["pressure_language"] = fmt.Sprintf("Pressure words: %d", n)
	}

	return min(1.0, score), details
}

func countSubstrings(s string, words []string) int {
	var n int
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}

func containsWord(s, word string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(word)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		i = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

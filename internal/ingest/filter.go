package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Categorized is a posting annotated with standardized, filterable fields.
type Categorized struct {
	Posting

	Remote      bool   `json:"remote"`
	HasSalary   bool   `json:"has_salary"`
	MinSalary   int    `json:"min_salary,omitempty"`
	MaxSalary   int    `json:"max_salary,omitempty"`
	StdIndustry string `json:"std_industry,omitempty"`
	StdLocation string `json:"std_location,omitempty"`
}

// Categorize derives the standardized fields from a posting's raw text.
func Categorize(p Posting) Categorized {
	c := Categorized{Posting: p}

	location := strings.ToLower(strings.TrimSpace(p.Location))
	c.Remote = strings.Contains(location, "remote")
	c.StdLocation = ParseLocation(location)
	c.StdIndustry = strings.ToLower(strings.TrimSpace(p.Industry))

	if p.SalaryRange != "" {
		if min, max, ok := ParseSalaryRange(strings.ToLower(p.SalaryRange)); ok {
			c.HasSalary = true
			c.MinSalary = min
			c.MaxSalary = max
		}
	}
	return c
}

// CategorizeAll categorizes each posting in order.
func CategorizeAll(postings []Posting) []Categorized {
	out := make([]Categorized, len(postings))
	for i, p := range postings {
		out[i] = Categorize(p)
	}
	return out
}

var nonSalaryChars = regexp.MustCompile(`[^\d\-]`)

// ParseSalaryRange extracts (min, max) annual figures from strings like
// "€50k - €70k" or "50000-70000". Returns ok=false when no clean pair of
// numbers can be found.
func ParseSalaryRange(s string) (min, max int, ok bool) {
	s = strings.ReplaceAll(s, "k", "000")
	s = nonSalaryChars.ReplaceAllString(s, "")

	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	max, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}

// ParseLocation standardizes a location string: "remote" wins outright,
// otherwise the part before the first comma.
func ParseLocation(location string) string {
	if strings.Contains(location, "remote") {
		return "remote"
	}
	if i := strings.Index(location, ","); i >= 0 {
		return strings.TrimSpace(location[:i])
	}
	return strings.TrimSpace(location)
}

// FilterByLocation keeps postings whose standardized location matches.
func FilterByLocation(postings []Categorized, location string) []Categorized {
	want := strings.ToLower(strings.TrimSpace(location))
	var out []Categorized
	for _, p := range postings {
		if p.StdLocation == want {
			out = append(out, p)
		}
	}
	return out
}

// FilterByRemote keeps remote postings (or on-site ones when remote=false).
func FilterByRemote(postings []Categorized, remote bool) []Categorized {
	var out []Categorized
	for _, p := range postings {
		if p.Remote == remote {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySalaryRange keeps postings whose salary band overlaps [min, max].
// A zero bound is unbounded on that side; postings without salary info are
// dropped.
func FilterBySalaryRange(postings []Categorized, min, max int) []Categorized {
	var out []Categorized
	for _, p := range postings {
		if !p.HasSalary {
			continue
		}
		if min > 0 && p.MaxSalary < min {
			continue
		}
		if max > 0 && p.MinSalary > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterByIndustry keeps postings matching a standardized industry.
func FilterByIndustry(postings []Categorized, industry string) []Categorized {
	want := strings.ToLower(strings.TrimSpace(industry))
	var out []Categorized
	for _, p := range postings {
		if p.StdIndustry == want {
			out = append(out, p)
		}
	}
	return out
}

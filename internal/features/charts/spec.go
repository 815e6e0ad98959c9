package charts

import (
	"fmt"
	"strings"
)

type Kind int

const (
	HorizontalBar Kind = iota
	Scatter
)

func (k Kind) String() string {
	switch k {
	case Scatter:
		return "scatter"
	default:
		return "horizontal_bar"
	}
}

// Spec describes how one dataset becomes one image.
// For HorizontalBar, X is the bar length and Y the category.
// For Scatter, X and Y are both numeric and Label annotates each point.
type Spec struct {
	Name    string
	Kind    Kind
	X       string
	Y       string
	Label   string // Scatter annotation; for bars, category used when Y is blank
	Hue     string // colour grouping, defaults to one colour per row
	Title   string
	XLabel  string
	YLabel  string
	Palette string
	Width   int
	Height  int
}

// FileName is the image name inside the figures directory
func (s Spec) FileName() string {
	return s.Name + ".png"
}

// Fields lists every dataset column the chart reads, without duplicates
func (s Spec) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, f := range []string{s.X, s.Y, s.Label, s.Hue} {
		if f != "" && !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

// NumericFields lists the columns that must hold numbers:
// the bar length, or both scatter coordinates
func (s Spec) NumericFields() []string {
	if s.Kind == Scatter {
		return []string{s.X, s.Y}
	}
	return []string{s.X}
}

var registry = []Spec{
	{
		Name:    "top_paying_jobs",
		Kind:    HorizontalBar,
		X:       "salary_year_avg",
		Y:       "company_name",
		Label:   "job_title",
		Title:   "Top 10 Paying Companies for Data Analysts",
		XLabel:  "Average Yearly Salary ($)",
		YLabel:  "Company",
		Palette: "viridis",
		Width:   1200,
		Height:  600,
	},
	{
		Name:    "top_demanded_skills",
		Kind:    HorizontalBar,
		X:       "demand_count",
		Y:       "skill",
		Title:   "Top 10 Most Demanded Skills",
		XLabel:  "Number of Job Postings",
		YLabel:  "Skill",
		Palette: "magma",
		Width:   1000,
		Height:  600,
	},
	{
		Name:    "top_paying_skills",
		Kind:    HorizontalBar,
		X:       "avg_salary",
		Y:       "skill",
		Title:   "Top 10 Highest Paying Skills",
		XLabel:  "Average Salary ($)",
		YLabel:  "Skill",
		Palette: "coolwarm",
		Width:   1000,
		Height:  600,
	},
	{
		Name:    "optimal_skills",
		Kind:    Scatter,
		X:       "demand_count",
		Y:       "avg_salary",
		Label:   "skill",
		Hue:     "skill",
		Title:   "Optimal Skills: High Demand & High Salary",
		XLabel:  "Demand Count",
		YLabel:  "Average Salary ($)",
		Palette: "deep",
		Width:   1000,
		Height:  600,
	},
}

// Specs returns the fixed chart set in render order
func Specs() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Select returns the specs named in names, keeping registry order.
// An empty list selects everything.
func Select(names []string) ([]Spec, error) {
	if len(names) == 0 {
		return Specs(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSuffix(strings.TrimSpace(n), ".png")
		if _, ok := Lookup(n); !ok {
			return nil, fmt.Errorf("unknown chart %q", n)
		}
		want[n] = true
	}
	var out []Spec
	for _, s := range registry {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}

func Lookup(name string) (Spec, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

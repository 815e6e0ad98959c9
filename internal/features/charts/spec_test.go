package charts

import (
	"image/color"
	"testing"
)

func TestRegistryOrderAndNames(t *testing.T) {
	want := []string{"top_paying_jobs", "top_demanded_skills", "top_paying_skills", "optimal_skills"}
	specs := Specs()
	if len(specs) != len(want) {
		t.Fatalf("expected %d specs, got %d", len(want), len(specs))
	}
	for i, name := range want {
		if specs[i].Name != name {
			t.Errorf("spec %d: expected %s, got %s", i, name, specs[i].Name)
		}
		if specs[i].FileName() != name+".png" {
			t.Errorf("unexpected file name %s", specs[i].FileName())
		}
	}

	specs[0].Name = "mutated"
	if Specs()[0].Name != "top_paying_jobs" {
		t.Errorf("Specs must return a copy")
	}
}

func TestSelect(t *testing.T) {
	got, err := Select([]string{"optimal_skills", "top_paying_jobs.png"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "top_paying_jobs" || got[1].Name != "optimal_skills" {
		t.Errorf("expected registry order, got %v", got)
	}

	all, _ := Select(nil)
	if len(all) != 4 {
		t.Errorf("empty selection should return all specs")
	}

	if _, err := Select([]string{"pie"}); err == nil {
		t.Errorf("expected error for unknown chart")
	}
}

func TestFields(t *testing.T) {
	spec, _ := Lookup("optimal_skills")
	fields := spec.Fields()
	want := []string{"demand_count", "avg_salary", "skill"}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: expected %s, got %s", i, want[i], fields[i])
		}
	}

	jobs, _ := Lookup("top_paying_jobs")
	if got := jobs.Fields(); len(got) != 3 || got[2] != "job_title" {
		t.Errorf("unexpected fields %v", got)
	}
}

func TestColors(t *testing.T) {
	tests := []struct {
		palette string
		n       int
	}{
		{"viridis", 10},
		{"magma", 3},
		{"coolwarm", 1},
		{"deep", 12},
		{"unknown", 4},
	}
	for _, tt := range tests {
		got := Colors(tt.palette, tt.n)
		if len(got) != tt.n {
			t.Errorf("%s: expected %d colours, got %d", tt.palette, tt.n, len(got))
		}
	}

	deep := Colors("deep", 11)
	if deep[0] != deep[10] {
		t.Errorf("qualitative palette should cycle")
	}

	magma := Colors("magma", 5)
	if magma[0] == (color.RGBA{0, 0, 4, 255}) {
		t.Errorf("sequential palette should skip the darkest anchor")
	}

	if Colors("viridis", 0) != nil {
		t.Errorf("expected nil for n=0")
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor("#4c72b0"); got != (color.RGBA{0x4c, 0x72, 0xb0, 0xff}) {
		t.Errorf("unexpected colour %v", got)
	}
	if got := hexColor("bad"); got != (color.RGBA{A: 255}) {
		t.Errorf("bad input should be opaque black, got %v", got)
	}
}

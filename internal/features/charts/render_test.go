package charts

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"job-charts/internal/dataset"
)

var fonts = EmbeddedFonts()

func skillsDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("top_demanded_skills",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindNumber}},
		[][]any{{"SQL", 7291}, {"Excel", 4611}, {"Python", 4330}})
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func optimalDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("optimal_skills",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindNumber}, {Name: "avg_salary", Kind: dataset.KindNumber}},
		[][]any{{"Go", 27, 115320}, {"Kafka", 40, 129999}, {"Scala", nil, 124903}, {"Java", 17, 106906}})
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func mustSpec(t *testing.T, name string) Spec {
	t.Helper()
	spec, ok := Lookup(name)
	if !ok {
		t.Fatalf("spec %s not registered", name)
	}
	return spec
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("%s is not a PNG: %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderBarChart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	r := NewRenderer(dir, fonts)
	spec := mustSpec(t, "top_demanded_skills")

	res, err := r.Render(skillsDataset(t), spec)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if res.Path != filepath.Join(dir, "top_demanded_skills.png") {
		t.Errorf("unexpected path %s", res.Path)
	}
	if res.Marks != 3 {
		t.Errorf("expected 3 bars, got %d", res.Marks)
	}
	want := []string{"SQL", "Excel", "Python"}
	for i, l := range want {
		if res.Labels[i] != l {
			t.Errorf("label %d: expected %s, got %s", i, l, res.Labels[i])
		}
	}

	w, h := decodeSize(t, res.Path)
	if w != spec.Width || h != spec.Height {
		t.Errorf("expected %dx%d image, got %dx%d", spec.Width, spec.Height, w, h)
	}
}

func TestRenderBarLabelFallback(t *testing.T) {
	ds := dataset.MustNew("top_paying_jobs",
		[]dataset.Column{{Name: "job_title"}, {Name: "company_name"}, {Name: "salary_year_avg", Kind: dataset.KindNumber}},
		[][]any{{"Data Analyst", "Meta", 336500}, {"Senior Data Analyst", "", 255829}})

	res, err := NewRenderer(t.TempDir(), fonts).Render(ds, mustSpec(t, "top_paying_jobs"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if res.Labels[0] != "Meta" || res.Labels[1] != "Senior Data Analyst" {
		t.Errorf("unexpected labels %v", res.Labels)
	}
}

func TestRenderScatterSkipsNullPoints(t *testing.T) {
	dir := t.TempDir()
	spec := mustSpec(t, "optimal_skills")

	res, err := NewRenderer(dir, fonts).Render(optimalDataset(t), spec)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if res.Marks != 3 {
		t.Errorf("expected 3 points (one null), got %d", res.Marks)
	}
	want := []string{"Go", "Kafka", "Java"}
	for i, l := range want {
		if res.Labels[i] != l {
			t.Errorf("label %d: expected %s, got %s", i, l, res.Labels[i])
		}
	}
	if w, h := decodeSize(t, res.Path); w != 1000 || h != 600 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
}

func TestRenderEveryRegisteredSpec(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, fonts)

	ds := dataset.MustNew("all",
		[]dataset.Column{
			{Name: "job_title"}, {Name: "company_name"}, {Name: "skill"},
			{Name: "salary_year_avg", Kind: dataset.KindNumber},
			{Name: "demand_count", Kind: dataset.KindNumber},
			{Name: "avg_salary", Kind: dataset.KindNumber},
		},
		[][]any{{"Data Analyst", "Meta", "SQL", 100000, 10, 90000}})

	for _, spec := range Specs() {
		res, err := r.Render(ds, spec)
		if err != nil {
			t.Fatalf("%s: %v", spec.Name, err)
		}
		if _, err := os.Stat(filepath.Join(dir, spec.Name+".png")); err != nil {
			t.Errorf("%s: file not written: %v", spec.Name, err)
		}
		if res.Marks != 1 {
			t.Errorf("%s: expected 1 mark, got %d", spec.Name, res.Marks)
		}
	}
}

func TestRenderMissingField(t *testing.T) {
	dir := t.TempDir()
	_, err := NewRenderer(dir, fonts).Render(skillsDataset(t), mustSpec(t, "optimal_skills"))
	if !errors.Is(err, dataset.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "optimal_skills.png")); !os.IsNotExist(err) {
		t.Errorf("no file should be written on validation failure")
	}
}

func TestRenderEmptyDatasetKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "top_demanded_skills.png")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}

	empty := dataset.MustNew("top_demanded_skills",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindNumber}}, nil)
	_, err := NewRenderer(dir, fonts).Render(empty, mustSpec(t, "top_demanded_skills"))
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Errorf("existing file was overwritten")
	}
}

func TestRenderOverwrites(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, fonts)
	spec := mustSpec(t, "top_demanded_skills")

	first, err := r.Render(skillsDataset(t), spec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(skillsDataset(t), spec)
	if err != nil {
		t.Fatal(err)
	}
	if first.Path != second.Path || first.Marks != second.Marks {
		t.Errorf("re-render differs: %+v vs %+v", first, second)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, got %d", len(entries))
	}
}

func TestRenderNegativeValues(t *testing.T) {
	ds := dataset.MustNew("delta",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindNumber}},
		[][]any{{"up", 5}, {"down", -3}, {"none", nil}})

	res, err := NewRenderer(t.TempDir(), fonts).Render(ds, mustSpec(t, "top_demanded_skills"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if res.Marks != 2 || len(res.Labels) != 3 {
		t.Errorf("expected 2 bars and 3 labels, got %d and %v", res.Marks, res.Labels)
	}
}

func TestRenderNaNCellsAreNull(t *testing.T) {
	ds, err := dataset.FromText("top_demanded_skills",
		[]string{"skill", "demand_count"},
		[][]string{{"SQL", "7291"}, {"Excel", "NaN"}, {"Python", "Inf"}, {"R", "NA"}})
	if err != nil {
		t.Fatal(err)
	}

	res, err := NewRenderer(t.TempDir(), fonts).Render(ds, mustSpec(t, "top_demanded_skills"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if res.Marks != 1 || len(res.Labels) != 4 {
		t.Errorf("expected 1 bar and 4 labels, got %d and %v", res.Marks, res.Labels)
	}
}

func TestRenderRejectsTextValueColumn(t *testing.T) {
	dir := t.TempDir()
	ds := dataset.MustNew("top_demanded_skills",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindString}},
		[][]any{{"SQL", "lots"}, {"Excel", "some"}})

	_, err := NewRenderer(dir, fonts).Render(ds, mustSpec(t, "top_demanded_skills"))
	if !errors.Is(err, dataset.ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "top_demanded_skills.png")); !os.IsNotExist(err) {
		t.Errorf("no chart should be written for a text value column")
	}

	scatter := dataset.MustNew("optimal_skills",
		[]dataset.Column{{Name: "skill"}, {Name: "demand_count", Kind: dataset.KindNumber}, {Name: "avg_salary"}},
		[][]any{{"Go", 27, "high"}})
	if _, err := NewRenderer(dir, fonts).Render(scatter, mustSpec(t, "optimal_skills")); !errors.Is(err, dataset.ErrNotNumeric) {
		t.Errorf("scatter y must be numeric too, got %v", err)
	}
}

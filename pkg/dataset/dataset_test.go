package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

func datum(index int, artifacts map[string][]byte) *pipeline.Datum {
	return &pipeline.Datum{
		ID:        pipeline.DatumID(1, index),
		Index:     index,
		Question:  "How many grids are there?",
		Answer:    "There are 3 grids.",
		Artifacts: artifacts,
	}
}

func TestNewRecord(t *testing.T) {
	d := datum(0, nil)
	got := NewRecord(d, "images/x.png")
	want := Record{
		ID: d.ID,
		Messages: []Message{
			{Role: RoleUser, Content: "<image>How many grids are there?"},
			{Role: RoleAssistant, Content: "There are 3 grids."},
		},
		Images: []string{"images/x.png"},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(Record{})); diff != "" {
		t.Errorf("NewRecord (-want +got):\n%s", diff)
	}

	if r := NewRecord(d, ""); r.Images != nil {
		t.Errorf("Images = %v, want nil without an image", r.Images)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	png := []byte("\x89PNG fake")
	layout := []byte(`{"width":100}`)
	// Workers finish out of order.
	for _, i := range []int{2, 0, 1} {
		if err := w.Add(datum(i, map[string][]byte{
			pipeline.FormatPNG:  png,
			pipeline.FormatJSON: layout,
		})); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
	}
	if w.Len() != 3 {
		t.Errorf("Len = %d, want 3", w.Len())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, r := range records {
		if r.ID != pipeline.DatumID(1, i) {
			t.Errorf("record %d has ID %s, want datum %d first", i, r.ID, i)
		}
		want := []string{"images/" + r.ID + ".png"}
		if diff := cmp.Diff(want, r.Images); diff != "" {
			t.Errorf("record %d images (-want +got):\n%s", i, diff)
		}
		got, err := os.ReadFile(filepath.Join(dir, r.Images[0]))
		if err != nil {
			t.Fatalf("read image: %v", err)
		}
		if string(got) != string(png) {
			t.Errorf("image %d content mismatch", i)
		}
		if _, err := os.Stat(filepath.Join(dir, LayoutsDir, r.ID+".json")); err != nil {
			t.Errorf("layout file missing: %v", err)
		}
	}
}

func TestWriterSVGOnly(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	d := datum(0, map[string][]byte{pipeline.FormatSVG: []byte("<svg/>")})
	if err := w.Add(d); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"images/" + d.ID + ".svg"}, records[0].Images); diff != "" {
		t.Errorf("images (-want +got):\n%s", diff)
	}
}

func TestWriterJSONOnly(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	d := datum(0, map[string][]byte{pipeline.FormatJSON: []byte("{}")})
	if err := w.Add(d); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records[0].Images) != 0 {
		t.Errorf("images = %v, want none", records[0].Images)
	}
	user := records[0].Messages[0].Content
	if strings.Contains(user, ImageToken) {
		t.Errorf("user content %q carries an image token without an image", user)
	}
	if user != d.Question {
		t.Errorf("user content = %q, want %q", user, d.Question)
	}
	if _, err := os.Stat(filepath.Join(dir, artifactPath(d.ID, pipeline.FormatJSON))); err != nil {
		t.Errorf("layout file not written: %v", err)
	}
}

func TestWriterEmpty(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty index = %q, want %q", data, "[]\n")
	}
}

func TestWriterClosed(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if err := w.Add(datum(0, nil)); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Add after Close = %v, want INTERNAL_ERROR", err)
	}
}

func TestWriterConcurrent(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Add(datum(i, map[string][]byte{pipeline.FormatPNG: {byte(i)}})); err != nil {
				t.Errorf("Add(%d): %v", i, err)
			}
		}()
	}
	wg.Wait()

	if w.Len() != 16 {
		t.Errorf("Len = %d, want 16", w.Len())
	}
}

func TestNewWriterRejectsTraversal(t *testing.T) {
	if _, err := NewWriter("../escape"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("NewWriter(../escape) = %v, want INVALID_PATH", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Load of empty dir = %v, want INVALID_PATH", err)
	}
}

func TestWriterWithPipeline(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.MinGrids, opts.MaxGrids = 2, 3
	opts.Workers = 2
	r, err := pipeline.NewRunner(opts)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	stats, err := r.Generate(t.Context(), 3, w.Add)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != stats.Generated {
		t.Errorf("%d records for %d generated datums", len(records), stats.Generated)
	}
	for _, rec := range records {
		if len(rec.Images) != 1 {
			t.Errorf("record %s has %d images, want 1", rec.ID, len(rec.Images))
		}
	}
}

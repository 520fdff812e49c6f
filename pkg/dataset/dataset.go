// Package dataset writes generated datums to disk as a chat-style
// vision-language dataset.
//
// An output directory looks like:
//
//	out/
//	  dataset.json        indented array of Record, ordered by datum index
//	  images/<id>.png     rendered canvas per datum
//	  images/<id>.svg     optional vector rendering
//	  layouts/<id>.json   optional layout description
//
// Each record holds one user turn ("<image>" followed by the meta question)
// and one assistant turn with the joined answer.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/gridtower/pkg/errors"
	"github.com/matzehuels/gridtower/pkg/pipeline"
)

// File and directory names inside an output directory.
const (
	IndexFile  = "dataset.json"
	ImagesDir  = "images"
	LayoutsDir = "layouts"

	// ImageToken marks where the image goes in the user turn.
	ImageToken = "<image>"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one dataset entry. Image paths are relative to the output
// directory.
type Record struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	Images   []string  `json:"images"`

	index int
}

// NewRecord builds the record for d. imagePath is stored as given; an empty
// path yields a text-only record without the image token, so the number of
// tokens always equals the number of images.
func NewRecord(d *pipeline.Datum, imagePath string) Record {
	user := d.Question
	var images []string
	if imagePath != "" {
		user = ImageToken + user
		images = []string{imagePath}
	}
	return Record{
		ID: d.ID,
		Messages: []Message{
			{Role: RoleUser, Content: user},
			{Role: RoleAssistant, Content: d.Answer},
		},
		Images: images,
		index:  d.Index,
	}
}

// Writer stores datums under a directory. It is safe for concurrent use.
type Writer struct {
	dir string

	mu      sync.Mutex
	records []Record
	closed  bool
}

// NewWriter validates dir and creates it along with the images directory.
func NewWriter(dir string) (*Writer, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, ImagesDir), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Add writes the datum's artifacts and queues its record for the index.
func (w *Writer) Add(d *pipeline.Datum) error {
	var image string
	for _, format := range []string{pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatJSON} {
		data, ok := d.Artifacts[format]
		if !ok {
			continue
		}
		rel := artifactPath(d.ID, format)
		if err := w.write(rel, data); err != nil {
			return err
		}
		if image == "" && format != pipeline.FormatJSON {
			image = rel
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New(errors.ErrCodeInternal, "dataset writer is closed")
	}
	w.records = append(w.records, NewRecord(d, image))
	return nil
}

// Len returns the number of records added so far.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}

// Close writes the index file. Records are ordered by datum index, so the
// file does not depend on the order in which workers finished.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	slices.SortFunc(w.records, func(a, b Record) int { return a.index - b.index })
	records := w.records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", IndexFile)
	}
	return w.write(IndexFile, append(data, '\n'))
}

func (w *Writer) write(rel string, data []byte) error {
	path := filepath.Join(w.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// artifactPath returns the slash-separated path of an artifact relative to
// the output directory.
func artifactPath(id, format string) string {
	if format == pipeline.FormatJSON {
		return LayoutsDir + "/" + id + ".json"
	}
	return ImagesDir + "/" + id + "." + format
}

// Load reads the index file of an output directory.
func Load(dir string) ([]Record, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", IndexFile)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", IndexFile)
	}
	return records, nil
}

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stimulus identifies one discovered audio file.
type Stimulus struct {
	Voice string // voice category, e.g. "male"
	Word  string // filename without extension
	Key   string // "<voice>_<word>" with accents stripped
	Path  string // absolute or root-relative file path
}

// Walker enumerates stimulus files under a corpus root.
type Walker struct {
	Root      string
	Voices    []string // processed in this order
	Extension string   // e.g. ".mp3"
}

// NewWalker creates a Walker for the given root. The voices slice fixes the
// processing order; files within a voice directory are visited in
// lexicographic filename order.
func NewWalker(root string, voices []string, extension string) *Walker {
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &Walker{Root: root, Voices: voices, Extension: extension}
}

// CheckRoot verifies the corpus root exists and is a directory. A missing
// root is the one fatal error in the system: it aborts before any per-file
// processing starts.
func (w *Walker) CheckRoot() error {
	info, err := os.Stat(w.Root)
	if err != nil {
		return fmt.Errorf("stimuli directory not found: %s: %w", w.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("stimuli path is not a directory: %s", w.Root)
	}
	return nil
}

// ListVoice returns the stimuli for one voice directory in lexicographic
// filename order. A missing voice directory returns os.ErrNotExist wrapped;
// callers treat that as a non-fatal warning.
func (w *Walker) ListVoice(voice string) ([]Stimulus, error) {
	dir := filepath.Join(w.Root, voice)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("voice directory %s: %w", dir, err)
	}

	var stimuli []Stimulus
	// os.ReadDir returns entries sorted by filename.
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), w.Extension) {
			continue
		}
		word := strings.TrimSuffix(e.Name(), w.Extension)
		stimuli = append(stimuli, Stimulus{
			Voice: voice,
			Word:  word,
			Key:   Key(voice, word),
			Path:  filepath.Join(dir, e.Name()),
		})
	}

	return stimuli, nil
}

package vault

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Custom errors for vault operations
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrInvalidFilename = errors.New("invalid note filename")
)

// Vault is a directory of Markdown recipe notes.
type Vault struct {
	dir string
}

// Note is a recipe note read back from the vault.
type Note struct {
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Tags     []string  `json:"tags"`
	Date     time.Time `json:"date"`
	Body     string    `json:"body"`
	Content  string    `json:"-"`
}

// ReadError describes a failure to read a single note file.
type ReadError struct {
	Filename string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

// ListResult contains the notes in the vault along with any per-file errors
// that occurred while reading them.
type ListResult struct {
	Notes  []Note
	Errors []ReadError
}

type noteMeta struct {
	Title  string    `yaml:"title"`
	Source string    `yaml:"source"`
	Tags   []string  `yaml:"tags"`
	Date   time.Time `yaml:"date"`
}

// New opens the vault at dir, creating the directory if needed.
func New(dir string) (*Vault, error) {
	// 0700: owner-only access
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	return &Vault{dir: dir}, nil
}

// Dir returns the vault directory.
func (v *Vault) Dir() string {
	return v.dir
}

// Path returns the full path of a note in the vault.
func (v *Vault) Path(filename string) string {
	return filepath.Join(v.dir, filename)
}

// Save writes content under filename, replacing any existing note with the
// same name. It returns the full path written.
func (v *Vault) Save(filename, content string) (string, error) {
	if err := validateFilename(filename); err != nil {
		return "", err
	}

	path := v.Path(filename)
	// 0600: owner-only read/write
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write note: %w", err)
	}

	return path, nil
}

// Read loads a note and parses its front matter.
func (v *Vault) Read(filename string) (*Note, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(v.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to read note: %w", err)
	}

	return ParseNote(filename, data)
}

// ParseNote parses the front matter and body of a note.
func ParseNote(filename string, data []byte) (*Note, error) {
	var meta noteMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	note := &Note{
		Filename: filename,
		Title:    meta.Title,
		Source:   meta.Source,
		Tags:     meta.Tags,
		Date:     meta.Date,
		Body:     string(body),
		Content:  string(data),
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	return note, nil
}

// List returns every note in the vault sorted by filename. Unreadable or
// unparseable files are collected in the result's Errors slice rather than
// failing the whole listing.
func (v *Vault) List() (*ListResult, error) {
	entries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault directory: %w", err)
	}

	result := &ListResult{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		data, err := os.ReadFile(v.Path(entry.Name()))
		if err != nil {
			result.Errors = append(result.Errors, ReadError{Filename: entry.Name(), Err: err})
			continue
		}

		note, err := ParseNote(entry.Name(), data)
		if err != nil {
			result.Errors = append(result.Errors, ReadError{Filename: entry.Name(), Err: err})
			continue
		}

		result.Notes = append(result.Notes, *note)
	}

	sort.Slice(result.Notes, func(i, j int) bool {
		return result.Notes[i].Filename < result.Notes[j].Filename
	})

	return result, nil
}

// Delete removes a note from the vault.
func (v *Vault) Delete(filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}

	if err := os.Remove(v.Path(filename)); err != nil {
		if os.IsNotExist(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// validateFilename keeps notes inside the vault directory.
func validateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return nil
}

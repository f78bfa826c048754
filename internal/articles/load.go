// Package articles reads and writes the article list and imports Markdown
// files with front matter.
package articles

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mithrel/blogtech/pkg/api"
)

// Decode reads a JSON array of articles or an NDJSON stream.
func Decode(r io.Reader) ([]api.Article, error) {
	br := bufio.NewReader(r)
	first, err := peekFirstNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ShapeError{Index: -1, Reason: "empty input"}
		}
		return nil, err
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var arr []api.Article
		if err := dec.Decode(&arr); err != nil {
			if se := elementShapeError(err); se != nil {
				return nil, se
			}
			return nil, fmt.Errorf("decode articles: %w", err)
		}
		return arr, nil
	case '{':
		var out []api.Article
		for {
			var a api.Article
			if err := dec.Decode(&a); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				if se := elementShapeError(err); se != nil {
					return nil, se
				}
				return nil, fmt.Errorf("decode article %d: %w", len(out), err)
			}
			out = append(out, a)
		}
		return out, nil
	default:
		return nil, &ShapeError{Index: -1, Reason: fmt.Sprintf("expected a JSON array or object stream, found %q", first)}
	}
}

// Load decodes the article file at path.
func Load(path string) ([]api.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Save writes articles as an indented JSON array.
func Save(path string, list []api.Article) error {
	if list == nil {
		list = []api.Article{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Validate checks a single record; it returns a *ShapeError for records that
// cannot produce an output file.
func Validate(i int, a api.Article) error {
	s := a.CleanSlug()
	if s == "" {
		return &ShapeError{Index: i, ID: a.ID, Reason: "missing slug"}
	}
	if !api.ValidSlug(s) {
		return &ShapeError{Index: i, ID: a.ID, Reason: fmt.Sprintf("invalid slug %q: only letters, digits and -._~ are allowed", s)}
	}
	return nil
}

// Find returns the article whose id or slug equals key.
func Find(list []api.Article, key string) (api.Article, bool) {
	for _, a := range list {
		if a.CleanSlug() == key || fmt.Sprint(a.ID) == key {
			return a, true
		}
	}
	return api.Article{}, false
}

// elementShapeError reports a sequence element that is not an object at all,
// as opposed to a record with a badly typed field.
func elementShapeError(err error) *ShapeError {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field != "" {
		return nil
	}
	return &ShapeError{Index: -1, Reason: fmt.Sprintf("expected a sequence of article objects, found a %s element", ute.Value)}
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

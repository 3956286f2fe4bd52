package classify

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jbrukh/bayesian"
)

// Store persists the trained model pair. The vectorizer and the
// classifier are only meaningful together, so Load reports them absent
// unless both files exist.
type Store struct {
	VectorizerPath string
	ModelPath      string
}

// Load reads both artifacts. ok is false when either file is missing;
// a file that exists but fails to decode is an error.
func (s Store) Load() (*Vectorizer, *bayesian.Classifier, bool, error) {
	vf, err := os.Open(s.VectorizerPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("opening vectorizer: %w", err)
	}
	defer vf.Close()

	mf, err := os.Open(s.ModelPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("opening model: %w", err)
	}
	defer mf.Close()

	vec, err := ReadVectorizer(vf)
	if err != nil {
		return nil, nil, false, err
	}
	cl, err := bayesian.NewClassifierFromReader(mf)
	if err != nil {
		return nil, nil, false, fmt.Errorf("decoding model: %w", err)
	}
	return vec, cl, true, nil
}

// Save writes both artifacts atomically. Each file is staged in full
// and renamed into place, so a crash mid-save never leaves a truncated
// artifact behind.
func (s Store) Save(vec *Vectorizer, cl *bayesian.Classifier) error {
	for _, path := range []string{s.VectorizerPath, s.ModelPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating artifact directory: %w", err)
			}
		}
	}

	var vbuf bytes.Buffer
	if err := vec.WriteTo(&vbuf); err != nil {
		return err
	}
	var mbuf bytes.Buffer
	if err := cl.WriteTo(&mbuf); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	if err := writeFileAtomic(s.VectorizerPath, vbuf.Bytes()); err != nil {
		return err
	}
	return writeFileAtomic(s.ModelPath, mbuf.Bytes())
}

// writeFileAtomic stages data in a temp file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("staging %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("staging %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

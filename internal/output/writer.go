// Package output persists rendered documents under an output root.
//
// Every write goes through a temp file in the destination directory that is
// synced and renamed into place, so a reader never observes a partially
// written document.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ShayCichocki/labelcrew/internal/digest"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// rename is replaced in tests to fail the final step.
var rename = os.Rename

// IOError reports a document that could not be persisted.
type IOError struct {
	Agent string
	Kind  models.DocumentKind
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	if e.Agent == "" {
		return fmt.Sprintf("write %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("write %s/%s to %s: %v", e.Agent, e.Kind, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Path returns the destination of kind for agentID under root.
func Path(root, agentID string, kind models.DocumentKind) string {
	return filepath.Join(root, agentID, kind.FileName())
}

// Write stores text as the kind document of agentID under root and returns
// the final path. The agent directory is created if needed. Failures are
// returned as *IOError; nothing is retried.
func Write(agentID string, kind models.DocumentKind, text, root string) (string, error) {
	path := Path(root, agentID, kind)
	if err := WriteFile(path, []byte(text)); err != nil {
		ioErr := err.(*IOError)
		ioErr.Agent = agentID
		ioErr.Kind = kind
		return "", ioErr
	}
	return path, nil
}

// WriteFile atomically replaces path with data, creating parent
// directories as needed. Failures are returned as *IOError.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("create directory: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("write temp file: %w", err)}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("sync temp file: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("close temp file: %w", err)}
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("chmod temp file: %w", err)}
	}
	if err := rename(tmpName, path); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("rename into place: %w", err)}
	}
	committed = true
	return nil
}

// Digest returns the content digest recorded for a written document.
func Digest(text string) string {
	return digest.String([]byte(text))
}

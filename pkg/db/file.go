package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jakechorley/charge-nurse/pkg/core/model"
)

const (
	boardFile = "board.json"
	runsFile  = "runs.json"
)

// FileDB stores the board and run history as JSON files in a directory
type FileDB struct {
	dir string
	mu  sync.Mutex
}

// NewFileDB creates the directory if needed
func NewFileDB(dir string) (*FileDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileDB{dir: dir}, nil
}

// Close is a no-op
func (f *FileDB) Close() error {
	return nil
}

// GetBoard reads the saved board
func (f *FileDB) GetBoard(ctx context.Context) (*model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(f.dir, boardFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	return model.DecodeSnapshot(bytes.NewReader(data))
}

// SaveBoard replaces the saved board
func (f *FileDB) SaveBoard(ctx context.Context, board model.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var buf bytes.Buffer
	if err := model.EncodeSnapshot(&buf, board); err != nil {
		return err
	}
	return f.writeFile(boardFile, buf.Bytes())
}

// GetRuns returns all runs, oldest first
func (f *FileDB) GetRuns(ctx context.Context) ([]AssignmentRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.readRuns()
}

// InsertRun appends a run to the history
func (f *FileDB) InsertRun(ctx context.Context, run *AssignmentRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	runs, err := f.readRuns()
	if err != nil {
		return err
	}
	runs = append(runs, *run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}
	return f.writeFile(runsFile, data)
}

func (f *FileDB) readRuns() ([]AssignmentRun, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, runsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []AssignmentRun{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	var runs []AssignmentRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to parse runs: %w", err)
	}
	return runs, nil
}

// writeFile writes through a temporary file so a crash never leaves a half-written board
func (f *FileDB) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

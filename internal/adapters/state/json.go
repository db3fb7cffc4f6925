// Package state provides report persistence backends.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/fsutil"
)

const (
	kindAnalysis    = "analysis"
	kindFinalReport = "final_report"
)

// FileStore persists reports as JSON documents in a directory, one file per
// report: {runID}_analysis.json and {runID}_final_report.json. Writes are
// atomic.
type FileStore struct {
	dir string
}

// NewFileStore creates a JSON file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

// SaveAnalysis implements core.ReportStore.
func (s *FileStore) SaveAnalysis(_ context.Context, report *core.AnalysisReport) error {
	return s.write(documentName(report.TestRunID, kindAnalysis), report)
}

// SaveWorkflowReport implements core.ReportStore.
func (s *FileStore) SaveWorkflowReport(_ context.Context, report *core.WorkflowReport) error {
	return s.write(documentName(report.RunID, kindFinalReport), report)
}

// LoadAnalysis implements core.ReportStore.
func (s *FileStore) LoadAnalysis(_ context.Context, id core.RunID) (*core.AnalysisReport, error) {
	var report core.AnalysisReport
	if err := s.read(documentName(id, kindAnalysis), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// LoadWorkflowReport implements core.ReportStore.
func (s *FileStore) LoadWorkflowReport(_ context.Context, id core.RunID) (*core.WorkflowReport, error) {
	var report core.WorkflowReport
	if err := s.read(documentName(id, kindFinalReport), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// List implements core.ReportStore. Reports are returned newest first.
func (s *FileStore) List(_ context.Context) ([]core.ReportInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading report directory: %w", err)
	}

	var infos []core.ReportInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		runID, kind, ok := splitDocumentName(name)
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, core.ReportInfo{
			Name:      name,
			RunID:     runID,
			Kind:      kind,
			CreatedAt: fi.ModTime(),
			SizeBytes: fi.Size(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

func (s *FileStore) write(name string, doc any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return core.ErrState(core.CodePersistenceFailed, "creating report directory").WithCause(err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return core.ErrState(core.CodePersistenceFailed, "encoding report").WithCause(err)
	}

	path := filepath.Join(s.dir, name+".json")
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return core.ErrState(core.CodePersistenceFailed, "writing report file").WithCause(err)
	}
	return nil
}

func (s *FileStore) read(name string, doc any) error {
	// The document name is derived from a caller-supplied run ID, so the
	// read is scoped to the store directory.
	path := filepath.Join(s.dir, name+".json")
	data, err := fsutil.ReadFileScoped(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.ErrNotFound("report", name)
		}
		return core.ErrState(core.CodePersistenceFailed, "reading report file").WithCause(err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return core.ErrState(core.CodeStateCorrupted, "decoding report file").WithCause(err)
	}
	return nil
}

func documentName(id core.RunID, kind string) string {
	return fmt.Sprintf("%s_%s", id, kind)
}

func splitDocumentName(name string) (core.RunID, string, bool) {
	switch {
	case strings.HasSuffix(name, "_"+kindFinalReport):
		return core.RunID(strings.TrimSuffix(name, "_"+kindFinalReport)), kindFinalReport, true
	case strings.HasSuffix(name, "_"+kindAnalysis):
		return core.RunID(strings.TrimSuffix(name, "_"+kindAnalysis)), kindAnalysis, true
	default:
		return "", "", false
	}
}

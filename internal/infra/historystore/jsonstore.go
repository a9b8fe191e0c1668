package historystore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

const (
	indexFile = "index.jsonl"
	maskValue = "********"
	// minIDPrefix is the shortest ID prefix Get accepts.
	minIDPrefix = 4
)

type JSONStore struct {
	dir            string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
	newID          func() string
	logger         *slog.Logger
}

type Option func(*JSONStore)

// WithIndex toggles the predictions/index.jsonl index (on by default).
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithLogger sets the logger used for non-fatal write problems.
func WithLogger(l *slog.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *JSONStore) { s.newID = fn }
}

// NewJSONStore stores records under dir (the resolved predictions directory).
func NewJSONStore(dir string, cfg domain.Config, opts ...Option) *JSONStore {
	s := &JSONStore{
		dir:            dir,
		maskingEnabled: cfg.Masking.Enabled,
		writeIndex:     true,
		now:            time.Now,
		newID:          uuid.NewString,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.HistoryStore = (*JSONStore)(nil)

// Dir returns the directory records are written to.
func (s *JSONStore) Dir() string { return s.dir }

// Append writes rec to its own file and returns the record ID.
// A missing ID or timestamp is filled in; the caller's value is not modified.
func (s *JSONStore) Append(rec domain.PredictionRecord) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "historystore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	toSave := rec
	if toSave.ID == "" {
		toSave.ID = s.newID()
	}
	if toSave.CreatedAt.IsZero() {
		toSave.CreatedAt = s.now()
	}
	toSave.CreatedAt = toSave.CreatedAt.UTC()

	slug := slugify(toSave.Template)
	if slug == "" {
		slug = slugify(string(toSave.Kind))
	}
	if slug == "" {
		slug = "prediction"
	}

	stem := fmt.Sprintf("%s_%s", toSave.CreatedAt.Format("20060102T150405Z"), slug)
	filename, path := s.uniquePath(stem)

	if s.maskingEnabled {
		toSave = maskRecord(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "historystore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "historystore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "historystore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		err := s.appendIndex(domain.HistoryRef{
			ID:          toSave.ID,
			File:        filename,
			Kind:        toSave.Kind,
			Template:    toSave.Template,
			Description: toSave.Description,
			CreatedAt:   toSave.CreatedAt,
		})
		if err != nil {
			// The record file is already written; Get falls back to scanning.
			s.logger.Warn("history.index_write_failed",
				"id", toSave.ID,
				"path", filepath.Join(s.dir, indexFile),
				"error", err,
			)
		}
	}

	return toSave.ID, nil
}

func (s *JSONStore) uniquePath(stem string) (string, string) {
	name := stem + ".json"
	for i := 2; ; i++ {
		p := filepath.Join(s.dir, name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			return name, p
		}
		name = fmt.Sprintf("%s_%d.json", stem, i)
	}
}

func (s *JSONStore) appendIndex(ref domain.HistoryRef) error {
	line, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// List returns stored records oldest first. limit > 0 keeps the newest limit
// records. A missing directory yields an empty list.
func (s *JSONStore) List(limit int) ([]domain.PredictionRecord, error) {
	files, err := s.recordFiles()
	if err != nil {
		return nil, err
	}

	type entry struct {
		file string
		rec  domain.PredictionRecord
	}
	entries := make([]entry, 0, len(files))
	for _, name := range files {
		rec, err := readRecord(filepath.Join(s.dir, name))
		if err != nil {
			// Foreign or half-written files are not part of the history.
			continue
		}
		entries = append(entries, entry{file: name, rec: rec})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.Before(b.rec.CreatedAt)
		}
		return a.file < b.file
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]domain.PredictionRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.rec)
	}
	return out, nil
}

// Get finds a record by full ID, unique ID prefix, or file name (with or
// without .json).
func (s *JSONStore) Get(id string) (domain.PredictionRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.PredictionRecord{}, domain.ValidationError("historystore.get", "record id is required")
	}

	if ref, ok := s.lookupIndex(id); ok {
		if rec, err := readRecord(filepath.Join(s.dir, ref.File)); err == nil {
			return rec, nil
		}
	}

	stem := strings.TrimSuffix(id, ".json")
	if rec, err := readRecord(filepath.Join(s.dir, stem+".json")); err == nil {
		return rec, nil
	}

	// Fall back to scanning when the index is missing or stale.
	recs, err := s.List(0)
	if err != nil {
		return domain.PredictionRecord{}, err
	}
	var matches []domain.PredictionRecord
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
		if len(id) >= minIDPrefix && strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.PredictionRecord{}, &domain.OpError{
			Op:   "historystore.get",
			Kind: domain.KindNotFound,
			Path: s.dir,
			Err:  fmt.Errorf("record %q: %w", id, domain.ErrNotFound),
		}
	default:
		return domain.PredictionRecord{}, domain.ValidationError("historystore.get", "id prefix %q matches %d records", id, len(matches))
	}
}

func (s *JSONStore) lookupIndex(id string) (domain.HistoryRef, bool) {
	f, err := os.Open(filepath.Join(s.dir, indexFile))
	if err != nil {
		return domain.HistoryRef{}, false
	}
	defer f.Close()

	var found domain.HistoryRef
	ok := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ref domain.HistoryRef
		if err := json.Unmarshal(sc.Bytes(), &ref); err != nil {
			continue
		}
		if ref.ID == id {
			return ref, true
		}
		if len(id) >= minIDPrefix && strings.HasPrefix(ref.ID, id) {
			if ok && found.ID != ref.ID {
				// Ambiguous; let the scan report it.
				return domain.HistoryRef{}, false
			}
			found, ok = ref, true
		}
	}
	return found, ok
}

func (s *JSONStore) recordFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "historystore.list",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func readRecord(path string) (domain.PredictionRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.PredictionRecord{}, err
	}
	var rec domain.PredictionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.PredictionRecord{}, err
	}
	if rec.ID == "" && rec.CreatedAt.IsZero() {
		return domain.PredictionRecord{}, errors.New("not a prediction record")
	}
	return rec, nil
}

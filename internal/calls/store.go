package calls

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store owns the ordered collection of call records and its durable copy: one
// JSON array document, re-read at process start and rewritten after every
// mutation.
//
// Persistence failures are logged and absorbed; the in-memory collection is
// always the source of truth for the running process.
type Store struct {
	mu      sync.Mutex
	path    string
	records []CallRecord
	log     *slog.Logger
}

func NewStore(path string, log *slog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load reads the record document. A missing file or a parse failure starts the
// store empty; neither is fatal.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info("no call records file, starting empty", "path", s.path)
		} else {
			s.log.Error("call records load failed, starting empty", "path", s.path, "err", err)
		}
		s.records = nil
		return
	}

	var records []CallRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error("call records parse failed, starting empty", "path", s.path, "err", err)
		s.records = nil
		return
	}
	s.records = records
	s.log.Info("call records loaded", "path", s.path, "count", len(records))
}

// Upsert merges one record by id and persists the whole collection.
//
// An existing record only takes the new Status and Results; its timestamp,
// phone number, and patient snapshot are untouched. An unknown id appends the
// record as given.
func (s *Store) Upsert(rec CallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i].Status = rec.Status
			s.records[i].Results = rec.Results
			found = true
			break
		}
	}
	if !found {
		s.records = append(s.records, rec)
	}

	if err := s.saveLocked(); err != nil {
		s.log.Error("call records save failed", "path", s.path, "call_id", rec.ID, "err", err)
	}
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (CallRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], true
		}
	}
	return CallRecord{}, false
}

// List returns all records in insertion order.
func (s *Store) List() []CallRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CallRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Save persists the current collection. Upsert already saves; this exists for
// callers that need an explicit flush.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// saveLocked rewrites the whole document via temp file + rename so a crash
// mid-write cannot truncate existing records.
func (s *Store) saveLocked() error {
	records := s.records
	if records == nil {
		records = []CallRecord{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".call_records-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// SortNewestFirst orders records by timestamp descending for display. Records
// without a timestamp sort last. Storage order is untouched.
func SortNewestFirst(records []CallRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}

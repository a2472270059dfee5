package mailbox

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TraceFile is the append-only JSONL file holding delivery records.
const TraceFile = "trace.jsonl"

// Store persists delivery records as JSONL (one JSON object per line) in
// an append-only log.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store writing under dir. The directory is created
// lazily on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the trace file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, TraceFile)
}

// Append writes records to the trace in order.
func (s *Store) Append(recs ...Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mailbox: create directory: %w", err)
	}

	var data []byte
	for _, r := range recs {
		line, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("mailbox: marshal record: %w", err)
		}
		data = append(data, line...)
		data = append(data, '\n')
	}
	return s.atomicAppend(s.Path(), data)
}

// ReadTrace returns every record in dir's trace, ordered by delivery tick
// and recipient. A missing trace yields no records and no error.
func ReadTrace(dir string) ([]Record, error) {
	path := filepath.Join(dir, TraceFile)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("mailbox: open trace: %w", err)
	}
	defer func() { _ = f.Close() }()

	var recs []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			// Skip malformed lines rather than failing entirely
			continue
		}
		recs = append(recs, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mailbox: scan trace: %w", err)
	}

	sortRecords(recs)
	return recs, nil
}

// atomicAppend appends data to a file under a mutex to serialize writes.
func (s *Store) atomicAppend(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("mailbox: open trace for append: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("mailbox: append to trace: %w", err)
	}

	return f.Close()
}

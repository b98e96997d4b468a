package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"staffq/internal/domain"
)

// Loader reads and validates employee corpus files. Records that fail
// validation are skipped with a warning; only an unreadable file fails the
// load. Emptiness is the caller's concern.
type Loader struct {
	validate *validator.Validate
	log      *zap.Logger
}

type corpusFile struct {
	Employees []domain.Employee `json:"employees"`
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{
		validate: validator.New(),
		log:      log,
	}
}

// Locate resolves a corpus path that may be a glob pattern. When several
// files match, the most recently modified wins, so a drop directory of
// corpus snapshots serves its newest file.
func (l *Loader) Locate(pattern string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Stat(pattern); err != nil {
			return "", fmt.Errorf("corpus file: %w", err)
		}
		return pattern, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad corpus pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no corpus file matches %q", pattern)
	}

	sort.Strings(matches)
	best := ""
	var bestMod int64
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if best == "" || info.ModTime().Unix() > bestMod {
			best = match
			bestMod = info.ModTime().Unix()
		}
	}
	if best == "" {
		return "", fmt.Errorf("no readable corpus file matches %q", pattern)
	}
	return best, nil
}

// Parse validates the employee records in raw corpus JSON. Both the
// {"employees": [...]} wrapper and a bare array are accepted.
func (l *Loader) Parse(data []byte) (*Directory, error) {
	employees, err := decodeEmployees(data)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(employees))
	usable := make([]domain.Employee, 0, len(employees))
	for i, emp := range employees {
		if err := l.validate.Struct(emp); err != nil {
			l.log.Warn("skipping invalid employee record",
				zap.Int("position", i),
				zap.Int("id", emp.ID),
				zap.Error(err))
			continue
		}
		if seen[emp.ID] {
			l.log.Warn("skipping duplicate employee ID",
				zap.Int("position", i),
				zap.Int("id", emp.ID))
			continue
		}
		seen[emp.ID] = true
		usable = append(usable, emp)
	}

	return NewDirectory(usable), nil
}

func decodeEmployees(data []byte) ([]domain.Employee, error) {
	var file corpusFile
	if err := json.Unmarshal(data, &file); err == nil {
		if file.Employees == nil {
			return nil, fmt.Errorf(`corpus object holds no "employees" key`)
		}
		return file.Employees, nil
	}

	var plain []domain.Employee
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("corpus is neither an object with employees nor an employee array: %w", err)
	}
	return plain, nil
}

// Load reads the employee file at path and returns the usable records as a
// Directory.
func (l *Loader) Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	directory, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	l.log.Info("corpus loaded",
		zap.String("path", path),
		zap.Int("usable", directory.Count()))

	return directory, nil
}

// LoadGlob resolves pattern with Locate and loads the result.
func (l *Loader) LoadGlob(pattern string) (*Directory, error) {
	path, err := l.Locate(pattern)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

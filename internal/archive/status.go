package archive

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Identifier statuses tracked across harvest runs.
const (
	StatusDone       = "Done"
	StatusNoEligible = "No Eligible Documents"
)

// StatusEntry is one line of the identifiers file.
type StatusEntry struct {
	Identifier string
	Status     string
}

// ReadStatuses parses an identifiers file. Each line is either a bare
// identifier or "identifier,status". A missing file yields an empty list.
func ReadStatuses(path string) ([]StatusEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var entries []StatusEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		identifier, status, _ := strings.Cut(line, ",")
		entries = append(entries, StatusEntry{Identifier: identifier, Status: status})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateStatus rewrites the identifiers file with the given identifier set
// to status, preserving the order of existing entries.
func UpdateStatus(path, identifier, status string) error {
	entries, err := ReadStatuses(path)
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].Identifier == identifier {
			entries[i].Status = status
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, StatusEntry{Identifier: identifier, Status: status})
	}

	var b strings.Builder
	for _, e := range entries {
		if e.Status != "" {
			fmt.Fprintf(&b, "%s,%s\n", e.Identifier, e.Status)
		} else {
			fmt.Fprintf(&b, "%s\n", e.Identifier)
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

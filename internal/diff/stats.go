// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import "fmt"

// Stats holds the per-kind record counts of a diff.
type Stats struct {
	Added     int `json:"added" yaml:"added"`
	Removed   int `json:"removed" yaml:"removed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Aggregate counts records by kind.
func Aggregate(records []Record) Stats {
	var s Stats
	for _, r := range records {
		switch r.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Equal:
			s.Unchanged++
		}
	}
	return s
}

// Total returns the number of records counted.
func (s Stats) Total() int {
	return s.Added + s.Removed + s.Unchanged
}

// String returns a compact "+A -R =U" summary.
func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d =%d", s.Added, s.Removed, s.Unchanged)
}

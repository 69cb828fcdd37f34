// server/internal/serials/serials.go
package serials

import "strings"

// Normalize trims every entry, drops blanks and drops duplicates
// (case-sensitive), preserving first-seen order. This runs once at save time
// so the stored serialNumbers list never contains empty or repeated entries.
func Normalize(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// MergeNew returns the entries of batch that are neither blank, duplicated
// within the batch, nor already present in existing. filtered counts how many
// batch entries were dropped.
func MergeNew(existing, batch []string) (added []string, filtered int) {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[strings.TrimSpace(s)] = true
	}
	added = []string{}
	for _, s := range batch {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			filtered++
			continue
		}
		seen[s] = true
		added = append(added, s)
	}
	return added, filtered
}

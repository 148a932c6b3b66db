// importer/tag.go
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"assettracker/models"
)

// normalizeKey lowercases and strips everything but letters and digits, so
// "LCD-Monitors" and "LCD Monitor" resolve to the same key.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PrefixKey builds the lookup key for a (category, subcategory) pair.
func PrefixKey(category, subcategory string) string {
	return normalizeKey(category) + "::" + normalizeKey(subcategory)
}

// defaultPrefixTable covers the common categories every tenant starts with.
var defaultPrefixTable = map[string]string{
	PrefixKey("Computer Assets", "Laptop"):         "CA-LAP",
	PrefixKey("Computer Assets", "Desktop"):        "CA-DESK",
	PrefixKey("Computer Assets", "Server"):         "CA-SRV",
	PrefixKey("External Equipment", "Keyboard"):    "EE-KBD",
	PrefixKey("External Equipment", "Mouse"):       "EE-MSE",
	PrefixKey("External Equipment", "Charger"):     "EE-CHG",
	PrefixKey("External Equipment", "LCD Monitor"): "EE-LCD",
	PrefixKey("External Equipment", "Bag"):         "EE-BAG",
	PrefixKey("Office Supplies", "Printer"):        "OS-PRT",
	PrefixKey("Office Supplies", "Scanner"):        "OS-SCN",
}

// BuildPrefixMap overlays the tenant's configured category prefixes on top of
// the built-in default table.
func BuildPrefixMap(categories []models.Category) map[string]string {
	prefixes := make(map[string]string, len(defaultPrefixTable))
	for k, v := range defaultPrefixTable {
		prefixes[k] = v
	}
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			if sub.TagPrefix != "" {
				prefixes[PrefixKey(cat.Name, sub.Name)] = sub.TagPrefix
			}
		}
	}
	return prefixes
}

// padKey pads s with 'X' up to n characters after truncating.
func padKey(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	for len(s) < n {
		s += "x"
	}
	return strings.ToUpper(s)
}

// DerivePrefix produces a stable prefix for unconfigured pairs: first two
// normalized characters of the category plus first three of the subcategory,
// uppercased and padded with X. "Office Supplies"/"Printer" -> OF-PRI.
func DerivePrefix(category, subcategory string) string {
	return padKey(normalizeKey(category), 2) + "-" + padKey(normalizeKey(subcategory), 3)
}

// ResolvePrefix looks the pair up in the overlaid prefix map and falls back
// to the deterministic derivation, so every pair yields a reproducible
// prefix.
func ResolvePrefix(category, subcategory string, prefixes map[string]string) string {
	if p, ok := prefixes[PrefixKey(category, subcategory)]; ok {
		return p
	}
	return DerivePrefix(category, subcategory)
}

// TagAllocator hands out unused asset tags for one import run. It scans the
// tenant's persisted tags once per prefix and then counts up in memory,
// keeping a reserved set so no two rows in the batch, and no row and a
// persisted tag, can collide. State is local to the run; two imports running
// at the same time against the same tenant and prefix can still race (no
// storage-level uniqueness constraint backs this up).
type TagAllocator struct {
	existing []string
	counters map[string]int
	reserved map[string]struct{}
}

func NewTagAllocator(existingTags []string) *TagAllocator {
	a := &TagAllocator{
		existing: existingTags,
		counters: make(map[string]int),
		reserved: make(map[string]struct{}, len(existingTags)),
	}
	for _, t := range existingTags {
		a.Reserve(t)
	}
	return a
}

// Reserve marks a tag as taken, case-insensitively. Explicit tags present in
// the import batch are reserved before any allocation happens.
func (a *TagAllocator) Reserve(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	a.reserved[strings.ToLower(tag)] = struct{}{}
}

// Next returns the next free tag for prefix, formatted
// <prefix>-<suffix padded to at least 3 digits>, and reserves it.
func (a *TagAllocator) Next(prefix string) string {
	key := strings.ToLower(prefix)
	n, seeded := a.counters[key]
	if !seeded {
		n = a.maxSuffix(prefix) + 1
	}

	for {
		tag := fmt.Sprintf("%s-%03d", prefix, n)
		if _, taken := a.reserved[strings.ToLower(tag)]; !taken {
			a.reserved[strings.ToLower(tag)] = struct{}{}
			a.counters[key] = n + 1
			return tag
		}
		n++
	}
}

// maxSuffix finds the highest numeric suffix among persisted tags matching
// ^prefix-\d+$ case-insensitively, or 0 when none exist.
func (a *TagAllocator) maxSuffix(prefix string) int {
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) + `-(\d+)$`)
	max := 0
	for _, t := range a.existing {
		m := re.FindStringSubmatch(strings.TrimSpace(t))
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > max {
			max = v
		}
	}
	return max
}

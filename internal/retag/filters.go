package retag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/llehouerou/tagedit/internal/tags"
	"github.com/llehouerou/tagedit/internal/textfilter"
)

// FilterRequest maps a lower-cased tag name to the filter names requested
// for it.
type FilterRequest map[string][]string

// Add queues filter for tag. Repeated pairs are kept once.
func (r FilterRequest) Add(tag, filter string) {
	tag = strings.ToLower(tag)
	for _, f := range r[tag] {
		if strings.EqualFold(f, filter) {
			return
		}
	}
	r[tag] = append(r[tag], filter)
}

// Set parses a TAG=FILTER option and adds it to the request.
func (r FilterRequest) Set(option string) error {
	tag, filter, ok := strings.Cut(option, "=")
	if !ok || tag == "" || filter == "" {
		return fmt.Errorf("filter %q: want TAG=FILTER", option)
	}
	r.Add(tag, filter)
	return nil
}

// Validate reports every unknown tag name and every unknown filter name.
// Only text tags can be filtered.
func (r FilterRequest) Validate() []error {
	var badTags, badFilters []string
	seen := make(map[string]bool)

	for tag, filters := range r {
		if _, ok := filterableField(tag); !ok {
			badTags = append(badTags, tag)
		}
		for _, name := range filters {
			if _, ok := textfilter.Lookup(name); ok || seen[name] {
				continue
			}
			seen[name] = true
			badFilters = append(badFilters, name)
		}
	}

	var errs []error
	if len(badTags) > 0 {
		sort.Strings(badTags)
		errs = append(errs, fmt.Errorf("unknown tag names: %s", strings.Join(badTags, ", ")))
	}
	if len(badFilters) > 0 {
		sort.Strings(badFilters)
		errs = append(errs, fmt.Errorf("unknown filter names: %s", strings.Join(badFilters, ", ")))
	}
	return errs
}

// wants reports whether filter was requested for tag.
func (r FilterRequest) wants(tag, filter string) bool {
	for _, f := range r[tag] {
		if strings.EqualFold(f, filter) {
			return true
		}
	}
	return false
}

func filterableField(name string) (tags.Field, bool) {
	field, ok := tags.ParseField(strings.ToLower(name))
	if !ok || field.Kind() != tags.KindText {
		return 0, false
	}
	return field, true
}

// ApplyFilters runs the requested filters through r and returns the number
// of changes. Tags are visited in name order and, for each tag, filters run
// in registry order regardless of the order they were requested in. Each
// filter sees the value left by the previous one.
func ApplyFilters(r *Resolver, snap *Snapshot, req FilterRequest) (int, error) {
	names := make([]string, 0, len(req))
	for tag := range req {
		names = append(names, tag)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	total := 0
	for _, tag := range names {
		field, ok := filterableField(tag)
		if !ok {
			return total, fmt.Errorf("cannot filter tag %q", tag)
		}
		for _, filter := range textfilter.Registry() {
			if !req.wants(tag, filter.Name) {
				continue
			}
			n, err := r.Resolve(field, filter.Apply(snap.Text(field)))
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

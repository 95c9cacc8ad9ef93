package composer

import "sort"

// Features is an append-only set of capability tags. Tests declare the tags
// they need and the framework skips tests whose tags are absent.
type Features struct {
	tags map[string]struct{}
}

// NewFeatures creates an empty feature set.
func NewFeatures() *Features {
	return &Features{tags: make(map[string]struct{})}
}

// Add registers a tag. Adding a tag twice is harmless.
func (f *Features) Add(tag string) {
	f.tags[tag] = struct{}{}
}

// Has reports whether the tag is present.
func (f *Features) Has(tag string) bool {
	_, ok := f.tags[tag]
	return ok
}

// List returns all tags in sorted order.
func (f *Features) List() []string {
	out := make([]string, 0, len(f.tags))
	for tag := range f.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of tags.
func (f *Features) Len() int {
	return len(f.tags)
}

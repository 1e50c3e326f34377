package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// Well-known metadata keys.
const (
	MetadataVersion      = "version"
	MetadataForgeVersion = "forge_version"
)

// Manifest is the translated content of launcher.hcl.
type Manifest struct {
	DefaultVariant string
	// Metadata maps a metadata key to the name of the resource whose first
	// line holds the value.
	Metadata map[string]string
	Variants map[string]*Variant

	order []string
}

// Variant is one deployment flavour of the launcher.
type Variant struct {
	Name        string
	Description string
	// Scripts run in exactly this order against a single runtime.
	Scripts []string
}

// Variant returns the variant with the given name, or the default variant
// when name is empty.
func (m *Manifest) Variant(name string) (*Variant, error) {
	if name == "" {
		name = m.DefaultVariant
	}
	v, ok := m.Variants[name]
	if !ok {
		return nil, &UnknownVariantError{Name: name, Available: m.VariantNames()}
	}
	return v, nil
}

// UnknownVariantError reports a variant name the manifest does not declare.
type UnknownVariantError struct {
	Name      string
	Available []string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// VariantNames returns the variant names in declaration order.
func (m *Manifest) VariantNames() []string {
	return append([]string(nil), m.order...)
}

// Resource returns the resource name that holds a metadata key.
func (m *Manifest) Resource(key string) (string, bool) {
	name, ok := m.Metadata[key]
	return name, ok
}

// MetadataKeys returns the declared metadata keys in sorted order.
func (m *Manifest) MetadataKeys() []string {
	keys := make([]string, 0, len(m.Metadata))
	for k := range m.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

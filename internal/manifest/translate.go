package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// translate converts the decoded HCL schema into the Manifest model and
// checks its internal consistency.
func translate(root *fileRoot) (*Manifest, error) {
	m := &Manifest{
		Metadata: make(map[string]string),
		Variants: make(map[string]*Variant),
	}
	var errs []string

	for _, md := range root.Metadata {
		if _, dup := m.Metadata[md.Key]; dup {
			errs = append(errs, fmt.Sprintf("metadata %q declared more than once", md.Key))
			continue
		}
		if strings.TrimSpace(md.Resource) == "" {
			errs = append(errs, fmt.Sprintf("metadata %q has an empty resource name", md.Key))
			continue
		}
		m.Metadata[md.Key] = md.Resource
	}

	for _, vb := range root.Variants {
		if _, dup := m.Variants[vb.Name]; dup {
			errs = append(errs, fmt.Sprintf("variant %q declared more than once", vb.Name))
			continue
		}
		if len(vb.Scripts) == 0 {
			errs = append(errs, fmt.Sprintf("variant %q has no scripts", vb.Name))
			continue
		}
		for i, s := range vb.Scripts {
			if strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Sprintf("variant %q has an empty script name at position %d", vb.Name, i))
			}
		}
		m.Variants[vb.Name] = &Variant{
			Name:        vb.Name,
			Description: vb.Description,
			Scripts:     append([]string(nil), vb.Scripts...),
		}
		m.order = append(m.order, vb.Name)
	}

	if len(m.order) == 0 {
		errs = append(errs, "at least one variant must be declared")
	}

	switch {
	case root.Launcher != nil:
		m.DefaultVariant = root.Launcher.DefaultVariant
		if _, ok := m.Variants[m.DefaultVariant]; !ok && len(m.order) > 0 {
			errs = append(errs, fmt.Sprintf("default_variant %q is not declared", m.DefaultVariant))
		}
	case len(m.order) > 0:
		m.DefaultVariant = m.order[0]
	}

	if len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "; "))
	}
	return m, nil
}

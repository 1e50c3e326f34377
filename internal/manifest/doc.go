// Package manifest loads the launcher manifest, an HCL document bundled as
// launcher.hcl. The manifest names the metadata resources (version strings)
// and declares, per deployment variant, the fixed order in which scripts run.
//
// HCL blocks are first decoded into the schema structs in schema.go and then
// translated into the format-agnostic Manifest model.
package manifest

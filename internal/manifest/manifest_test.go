package manifest

import (
	"context"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullManifest = `
launcher {
  default_variant = "full"
}

metadata "version" {
  resource = "VERSION"
}

metadata "forge_version" {
  resource = "FORGE_VERSION"
}

variant "keygen" {
  scripts = ["bubblebabble.lua", "coderdojo.lua", "keygen.lua"]
}

variant "full" {
  description = "Everything."
  scripts     = concat(["bubblebabble.lua", "coderdojo.lua"], ["check_environment.lua"])
}
`

func TestParse_FullManifest(t *testing.T) {
	t.Parallel()

	m, err := Parse(context.Background(), "launcher.hcl", []byte(fullManifest))
	require.NoError(t, err)

	assert.Equal(t, "full", m.DefaultVariant)
	assert.Equal(t, []string{"keygen", "full"}, m.VariantNames())
	assert.Equal(t, []string{"forge_version", "version"}, m.MetadataKeys())

	res, ok := m.Resource(MetadataVersion)
	require.True(t, ok)
	assert.Equal(t, "VERSION", res)

	full, err := m.Variant("")
	require.NoError(t, err)
	want := &Variant{
		Name:        "full",
		Description: "Everything.",
		Scripts:     []string{"bubblebabble.lua", "coderdojo.lua", "check_environment.lua"},
	}
	if diff := cmp.Diff(want, full); diff != "" {
		t.Errorf("default variant mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PlatformConditionalScripts(t *testing.T) {
	t.Parallel()

	src := `
variant "only" {
  scripts = compact(["common.lua", platform == "` + runtime.GOOS + `" ? "native.lua" : "", platform == "plan9-never" ? "other.lua" : ""])
}
`
	m, err := Parse(context.Background(), "launcher.hcl", []byte(src))
	require.NoError(t, err)

	v, err := m.Variant("only")
	require.NoError(t, err)
	assert.Equal(t, []string{"common.lua", "native.lua"}, v.Scripts)
	assert.Equal(t, "only", m.DefaultVariant, "the first variant is the default when no launcher block exists")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `variant "x" {`,
			wantErr: "failed to parse manifest",
		},
		{
			name:    "unknown block",
			src:     `plugin "x" {}`,
			wantErr: "failed to decode manifest",
		},
		{
			name:    "missing scripts attribute",
			src:     `variant "x" {}`,
			wantErr: "failed to decode manifest",
		},
		{
			name:    "no variants",
			src:     `metadata "version" { resource = "VERSION" }`,
			wantErr: "at least one variant must be declared",
		},
		{
			name: "unknown default",
			src: `launcher { default_variant = "nope" }
variant "x" { scripts = ["a.lua"] }`,
			wantErr: `default_variant "nope" is not declared`,
		},
		{
			name: "duplicate variant",
			src: `variant "x" { scripts = ["a.lua"] }
variant "x" { scripts = ["b.lua"] }`,
			wantErr: `variant "x" declared more than once`,
		},
		{
			name:    "empty script list",
			src:     `variant "x" { scripts = [] }`,
			wantErr: `variant "x" has no scripts`,
		},
		{
			name: "duplicate metadata",
			src: `metadata "version" { resource = "A" }
metadata "version" { resource = "B" }
variant "x" { scripts = ["a.lua"] }`,
			wantErr: `metadata "version" declared more than once`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(context.Background(), "launcher.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestVariant_Unknown(t *testing.T) {
	t.Parallel()

	m, err := Parse(context.Background(), "launcher.hcl", []byte(fullManifest))
	require.NoError(t, err)

	_, err = m.Variant("lite")
	var uv *UnknownVariantError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, "lite", uv.Name)
	assert.Contains(t, err.Error(), `unknown variant "lite" (available: keygen, full)`)
}

func TestLoad_FromBundle(t *testing.T) {
	t.Parallel()

	reader := resource.NewReader(fstest.MapFS{DefaultName: {Data: []byte(fullManifest)}})

	m, err := Load(context.Background(), reader, DefaultName)
	require.NoError(t, err)
	assert.Len(t, m.Variants, 2)

	_, err = Load(context.Background(), reader, "other.hcl")
	var nf *resource.NotFoundError
	require.ErrorAs(t, err, &nf)
}

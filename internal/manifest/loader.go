package manifest

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dojolaunch/internal/ctxlog"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// DefaultName is the resource name of the bundled manifest.
const DefaultName = "launcher.hcl"

// Load reads the named manifest resource and parses it.
func Load(ctx context.Context, reader *resource.Reader, name string) (*Manifest, error) {
	src, err := reader.ReadAll(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(ctx, name, src)
}

// Parse decodes manifest source. Expressions may use the `platform` and
// `arch` variables and the concat, compact and distinct functions, so a
// variant can adjust its script list to the host it runs on.
func Parse(ctx context.Context, filename string, src []byte) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest parsing started.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	m, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", filename, err)
	}

	logger.Debug("Manifest loaded.", "variants", len(m.Variants), "metadata", len(m.Metadata), "default_variant", m.DefaultVariant)
	return m, nil
}

// evalContext exposes the host platform to manifest expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"platform": cty.StringVal(runtime.GOOS),
			"arch":     cty.StringVal(runtime.GOARCH),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"compact":  stdlib.CompactFunc,
			"distinct": stdlib.DistinctFunc,
		},
	}
}

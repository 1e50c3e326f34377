package app

import (
	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/modules/digest"
	"github.com/specialistvlad/dojolaunch/modules/extract"
	"github.com/specialistvlad/dojolaunch/modules/http_client"
	"github.com/specialistvlad/dojolaunch/modules/metadata"
	"github.com/specialistvlad/dojolaunch/modules/report"
	"github.com/specialistvlad/dojolaunch/modules/system"
	"github.com/specialistvlad/dojolaunch/modules/userconfig"
)

// coreModules is the definitive list of modules every launcher script can
// call through the `launcher` table.
func (a *App) coreModules() []registry.Module {
	return []registry.Module{
		metadata.New(a.reader, a.manifest.Metadata),
		extract.New(a.reader, a.logger),
		userconfig.New(a.settings, a.cfg.DataDir),
		&system.Module{},
		&digest.Module{},
		http_client.New(http_client.Options{Logger: a.logger}),
		report.New(report.Options{URL: a.cfg.ReportURL, RunID: a.runID, Logger: a.logger}),
	}
}

package manifest

// fileRoot is the top-level structure of launcher.hcl.
type fileRoot struct {
	Launcher *launcherBlock   `hcl:"launcher,block"`
	Metadata []*metadataBlock `hcl:"metadata,block"`
	Variants []*variantBlock  `hcl:"variant,block"`
}

// launcherBlock holds the global launcher settings.
type launcherBlock struct {
	DefaultVariant string `hcl:"default_variant"`
}

// metadataBlock maps a metadata key to the resource holding its value.
type metadataBlock struct {
	Key      string `hcl:"key,label"`
	Resource string `hcl:"resource"`
}

// variantBlock declares a deployment variant and its ordered script list.
type variantBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Scripts     []string `hcl:"scripts"`
}

package build

import (
	"context"

	"github.com/pojntfx/buildextra/pkg/manifest"
)

const DataCommand = "build_data"

// Data registers the GSettings schema files.
type Data struct{}

func (c *Data) Name() string {
	return DataCommand
}

func (c *Data) DataFiles(bc *Context) []manifest.Entry {
	entries := []manifest.Entry{}
	for _, schemas := range bc.Project.GSchemas {
		entries = append(entries, manifest.Entry{
			Target: schemas.Target,
			Files:  schemas.Files,
		})
	}

	return entries
}

func (c *Data) Run(ctx context.Context, bc *Context) error {
	return bc.Manifest.Extend(c.DataFiles(bc)...)
}

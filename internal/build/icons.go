package build

import (
	"context"
	"os"
	"path/filepath"
)

const IconsCommand = "build_icons"

var iconPatterns = []string{"*.png", "*.svg"}

// Icons registers the icon theme tree laid out as <theme>/<size>/<category>.
// Symbolic links are never installed.
type Icons struct{}

func (c *Icons) Name() string {
	return IconsCommand
}

func (c *Icons) Run(ctx context.Context, bc *Context) error {
	themes, err := bc.Glob(filepath.Join(bc.Project.IconDir, "*"))
	if err != nil {
		return err
	}

	for _, theme := range themes {
		sizes, err := bc.Glob(filepath.Join(theme, "*"))
		if err != nil {
			return err
		}

		for _, size := range sizes {
			categories, err := bc.Glob(filepath.Join(size, "*"))
			if err != nil {
				return err
			}

			for _, category := range categories {
				icons, err := c.collect(bc, category)
				if err != nil {
					return err
				}

				if len(icons) == 0 {
					continue
				}

				target := filepath.Join("share", "icons", filepath.Base(theme), filepath.Base(size), filepath.Base(category))
				if err := bc.Manifest.Append(target, icons...); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (c *Icons) collect(bc *Context, category string) ([]string, error) {
	patterns := make([]string, len(iconPatterns))
	for i, pattern := range iconPatterns {
		patterns[i] = filepath.Join(category, pattern)
	}

	candidates, err := bc.GlobAll(patterns...)
	if err != nil {
		return nil, err
	}

	icons := []string{}
	for _, candidate := range candidates {
		info, err := os.Lstat(bc.Abs(candidate))
		if err != nil {
			return nil, err
		}

		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		icons = append(icons, candidate)
	}

	return icons, nil
}

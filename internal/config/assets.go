package config

import (
	"fmt"

	"github.com/Faultbox/midgard-gallery/internal/assets"
)

// Assets builds the asset descriptors. An explicit image list wins over
// ImagesDir.
func (g GalleryConfig) Assets() (assets.Assets, error) {
	if len(g.Images) == 0 {
		if g.ImagesDir == "" {
			return nil, fmt.Errorf("no images configured")
		}
		return assets.FromDir(g.ImagesDir)
	}

	a := make(assets.Assets, len(g.Images))
	for i, img := range g.Images {
		if img.Path == "" {
			return nil, fmt.Errorf("image %d has no path", i)
		}
		key := img.Key
		if key == "" {
			key = fmt.Sprintf("image%d", i+1)
		}
		if _, dup := a[key]; dup {
			return nil, fmt.Errorf("duplicate image key %q", key)
		}
		a[key] = &assets.Asset{Path: img.Path}
	}
	return a, nil
}

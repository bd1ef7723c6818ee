package main

import (
	"errors"

	"github.com/sqweek/dialog"

	"github.com/Faultbox/midgard-gallery/internal/config"
)

// browseImagesDir asks for an image folder with a native dialog and points
// the gallery at it. It reports false if the user cancelled.
func browseImagesDir(gc *config.GalleryConfig) (bool, error) {
	dir, err := dialog.Directory().
		Title("Choose an image folder").
		Browse()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return false, nil
		}
		return false, err
	}

	gc.ImagesDir = dir
	gc.Images = nil
	return true, nil
}

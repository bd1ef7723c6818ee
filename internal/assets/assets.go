// Package assets maps logical asset keys to image files and loads them
// into textures.
package assets

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
)

// Asset is one file to load. Data is nil until the loader resolves it and
// is read-only afterwards.
type Asset struct {
	Path string
	Data *texture.Texture
}

// Assets maps logical keys (e.g. "image1") to descriptors.
type Assets map[string]*Asset

// Keys returns the keys in natural order, so "image2" sorts before "image10".
func (a Assets) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Images returns the resolved textures of every key containing "image",
// in key order. Unresolved assets are skipped.
func (a Assets) Images() []*texture.Texture {
	var images []*texture.Texture
	for _, k := range a.Keys() {
		if !strings.Contains(k, "image") {
			continue
		}
		if asset := a[k]; asset.Data != nil {
			images = append(images, asset.Data)
		}
	}
	return images
}

// FromDir builds image1..imageN from the decodable files in dir, in file
// name order.
func FromDir(dir string) (Assets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image dir: %w", err)
	}

	a := make(Assets)
	n := 0
	for _, e := range entries {
		if e.IsDir() || !texture.Supported(e.Name()) {
			continue
		}
		n++
		a["image"+strconv.Itoa(n)] = &Asset{Path: filepath.Join(dir, e.Name())}
	}
	if n == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	return a, nil
}

// compareKeys orders by the non-numeric prefix, then by trailing number.
func compareKeys(a, b string) int {
	pa, na := splitNumber(a)
	pb, nb := splitNumber(b)
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	if c := cmp.Compare(na, nb); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func splitNumber(s string) (string, int) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, -1
	}
	return s[:i], n
}

// Package segment provides MaskProvider implementations: precomputed masks
// on disk and a remote inference service.
package segment

import (
	"context"
	"image"

	"github.com/setanarut/stickerlayers/utils"
)

// FileProvider serves a mask produced ahead of time, e.g. the mask.png a
// background-removal model saved. The model argument is ignored.
type FileProvider struct {
	Path string
}

func (p FileProvider) Mask(ctx context.Context, _ image.Image, _ string) (*image.Gray, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return utils.ReadMask(p.Path)
}

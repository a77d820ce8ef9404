package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	lb "github.com/setanarut/stickerlayers"
)

// DecodeImage decodes PNG, JPEG, WebP, BMP or TIFF data.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lb.ErrDecode, err)
	}
	return img, nil
}

func ReadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ReadMask loads a segmentation mask. Color masks are reduced to gray.
func ReadMask(path string) (*image.Gray, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g, nil
	}
	return lb.MaskFromImage(img), nil
}

// EncodePNG encodes img losslessly, keeping the alpha channel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", lb.ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func SaveImage(img image.Image, filename string) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	return writeFile(filename, data)
}

func SaveSVG(doc *lb.VectorDocument, filename string) error {
	if doc == nil || len(doc.SVG) == 0 {
		return fmt.Errorf("%w: empty vector document", lb.ErrEncode)
	}
	return writeFile(filename, doc.SVG)
}

func writeFile(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0o644)
}

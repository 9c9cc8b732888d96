package gradient

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a lossless raster format Save can write.
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension, ignoring case.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, &EncodingError{Path: path, Err: ErrUnsupportedFormat}
}

func (f Format) encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		return enc.Encode(w, img)
	}
}

// Save writes img to path in the format named by its extension.
//
// An unknown extension fails with an *EncodingError before the filesystem
// is touched. Create, write and close failures are *IOError. If encoding
// fails the partial file is removed. Save does no locking; the caller owns
// path for the duration of the call.
func Save(img image.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	if err := format.encode(bw, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &EncodingError{Path: path, Format: format.String(), Err: err}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// Load decodes an image previously written by Save, or any PNG, BMP or
// TIFF file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, &EncodingError{Path: path, Format: format, Err: err}
	}
	return img, nil
}

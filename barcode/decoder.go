package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"unicode/utf8"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

var (
	ErrNoBarcode          = errors.New("no barcode found")
	ErrUnreadableEncoding = errors.New("barcode payload is not valid utf-8")
	ErrInvalidImage       = errors.New("invalid image")
	ErrDecoderUnavailable = errors.New("barcode decoder unavailable")
)

// Library names the decoding dependency in diagnostics.
const Library = "gozxing"

// Result is the first symbol found in an image.
type Result struct {
	Payload   string
	Symbology string
}

// ReaderFactory builds a fresh reader. gozxing readers keep scratch buffers, so every
// Decode call gets its own set.
type ReaderFactory func(hints map[gozxing.DecodeHintType]interface{}) gozxing.Reader

// Decoder tries each reader in order and keeps the first hit.
type Decoder struct {
	readers []ReaderFactory
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewDecoder builds a decoder over the 1D retail symbologies first, then 2D codes.
func NewDecoder() *Decoder {
	return NewDecoderWithReaders(
		func(hints map[gozxing.DecodeHintType]interface{}) gozxing.Reader {
			return oned.NewMultiFormatUPCEANReader(hints)
		},
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return oned.NewCode128Reader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return oned.NewCode39Reader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return oned.NewCode93Reader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return oned.NewITFReader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return oned.NewCodaBarReader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return qrcode.NewQRCodeReader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return datamatrix.NewDataMatrixReader() },
		func(map[gozxing.DecodeHintType]interface{}) gozxing.Reader { return aztec.NewAztecReader() },
	)
}

func NewDecoderWithReaders(readers ...ReaderFactory) *Decoder {
	return &Decoder{
		readers: readers,
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode reads a JPEG or PNG image and returns its first barcode.
func (d *Decoder) Decode(data []byte) (Result, error) {
	if d == nil || len(d.readers) == 0 {
		return Result{}, ErrDecoderUnavailable
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	for _, newReader := range d.readers {
		res, err := newReader(d.hints).Decode(bmp, d.hints)
		if err != nil {
			var readerErr gozxing.ReaderException
			if errors.As(err, &readerErr) {
				continue
			}
			return Result{}, fmt.Errorf("decode barcode: %w", err)
		}

		// Built-in readers already return Go strings; custom readers may not.
		text := res.GetText()
		if !utf8.ValidString(text) {
			return Result{}, ErrUnreadableEncoding
		}
		return Result{
			Payload:   text,
			Symbology: symbology(res.GetBarcodeFormat()),
		}, nil
	}
	return Result{}, ErrNoBarcode
}

// symbology renders gozxing formats with zbar-style names (EAN13, QRCODE, ...).
func symbology(format gozxing.BarcodeFormat) string {
	if format == gozxing.BarcodeFormat_ITF {
		return "I25"
	}
	return strings.ReplaceAll(format.String(), "_", "")
}

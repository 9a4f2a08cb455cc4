package storage

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Rekognition menolak gambar > 5MB; foto HP gampang lewat batas itu.
// Downscale dulu, tetap JPEG (Rekognition hanya terima JPEG/PNG).
const (
	faceImageMaxW   = 1280
	faceImageMaxH   = 1280
	faceJPEGQuality = 85
)

// NormalizeFaceImage men-decode gambar apapun yang didukung imaging,
// mengecilkan bila perlu, dan mengembalikan JPEG.
func NormalizeFaceImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > faceImageMaxW || b.Dy() > faceImageMaxH {
		img = imaging.Fit(img, faceImageMaxW, faceImageMaxH, imaging.Lanczos)
	}

	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(faceJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

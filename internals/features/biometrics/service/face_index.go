// Package service membungkus oracle face-recognition (AWS Rekognition)
// di balik interface kecil supaya alur attendance bisa diuji dengan fake.
package service

import "context"

// FaceMatch: hasil pencarian wajah. ExternalID adalah user id yang
// dipakai saat enrollment.
type FaceMatch struct {
	ExternalID string
	Similarity float32
}

// FaceIndex: operasi wajah per collection organization.
type FaceIndex interface {
	// IndexFace mendaftarkan wajah user ke collection. Wajah lama user
	// yang sama diganti.
	IndexFace(ctx context.Context, collectionID, userID string, image []byte) error

	// SearchFace mencari wajah paling mirip. nil = tidak ada kandidat.
	SearchFace(ctx context.Context, collectionID string, image []byte) (*FaceMatch, error)
}

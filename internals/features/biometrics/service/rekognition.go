package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/gofiber/fiber/v2"

	"skyhr_backend/internals/configs"
)

// Floor similarity yang diminta ke Rekognition. Ambang final ada di
// orchestrator (configs.FaceMatchThreshold), supaya "di bawah ambang"
// bisa dibedakan dari "tidak dikenali sama sekali".
const searchFloorSimilarity float32 = 80

// RekognitionService: implementasi FaceIndex + CollectionAdmin di atas
// AWS Rekognition. Satu collection per organization, ExternalImageId
// diisi user id.
type RekognitionService struct {
	client   *rekognition.Client
	maxFaces int32
}

func NewRekognitionFromEnv(ctx context.Context) (*RekognitionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(configs.RekognitionRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("load konfigurasi AWS gagal: %w", err)
	}
	return &RekognitionService{
		client:   rekognition.NewFromConfig(cfg),
		maxFaces: int32(configs.FaceSearchMaxFaces),
	}, nil
}

/* ===================== FaceIndex ===================== */

// IndexFace: hapus wajah lama user (kalau ada) lalu index foto baru.
// Satu user = satu wajah per collection.
func (s *RekognitionService) IndexFace(ctx context.Context, collectionID, userID string, image []byte) error {
	if err := s.deleteFacesOfUser(ctx, collectionID, userID); err != nil {
		return err
	}

	out, err := s.client.IndexFaces(ctx, &rekognition.IndexFacesInput{
		CollectionId:    aws.String(collectionID),
		ExternalImageId: aws.String(userID),
		Image:           &types.Image{Bytes: image},
		MaxFaces:        aws.Int32(1),
		QualityFilter:   types.QualityFilterAuto,
	})
	if err != nil {
		return mapImageError(err)
	}
	if len(out.FaceRecords) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada wajah terdeteksi di foto")
	}
	return nil
}

func (s *RekognitionService) deleteFacesOfUser(ctx context.Context, collectionID, userID string) error {
	var (
		faceIDs   []string
		nextToken *string
	)
	for {
		out, err := s.client.ListFaces(ctx, &rekognition.ListFacesInput{
			CollectionId: aws.String(collectionID),
			NextToken:    nextToken,
		})
		if err != nil {
			var notFound *types.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return nil
			}
			return fmt.Errorf("list wajah gagal: %w", err)
		}
		for _, f := range out.Faces {
			if f.ExternalImageId != nil && *f.ExternalImageId == userID && f.FaceId != nil {
				faceIDs = append(faceIDs, *f.FaceId)
			}
		}
		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	if len(faceIDs) == 0 {
		return nil
	}
	_, err := s.client.DeleteFaces(ctx, &rekognition.DeleteFacesInput{
		CollectionId: aws.String(collectionID),
		FaceIds:      faceIDs,
	})
	if err != nil {
		return fmt.Errorf("hapus wajah lama gagal: %w", err)
	}
	return nil
}

// SearchFace mengembalikan kandidat paling mirip, atau nil bila tidak
// ada yang di atas floor.
func (s *RekognitionService) SearchFace(ctx context.Context, collectionID string, image []byte) (*FaceMatch, error) {
	out, err := s.client.SearchFacesByImage(ctx, &rekognition.SearchFacesByImageInput{
		CollectionId:       aws.String(collectionID),
		Image:              &types.Image{Bytes: image},
		MaxFaces:           aws.Int32(s.maxFaces),
		FaceMatchThreshold: aws.Float32(searchFloorSimilarity),
	})
	if err != nil {
		return nil, mapImageError(err)
	}
	if len(out.FaceMatches) == 0 {
		return nil, nil
	}

	best := out.FaceMatches[0]
	match := &FaceMatch{}
	if best.Similarity != nil {
		match.Similarity = *best.Similarity
	}
	if best.Face != nil && best.Face.ExternalImageId != nil {
		match.ExternalID = *best.Face.ExternalImageId
	}
	return match, nil
}

// Rekognition melempar InvalidParameterException saat foto tidak
// mengandung wajah; itu kesalahan input klien, bukan error server.
func mapImageError(err error) error {
	var invalid *types.InvalidParameterException
	if errors.As(err, &invalid) {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada wajah terdeteksi di foto")
	}
	var imageTooLarge *types.ImageTooLargeException
	if errors.As(err, &imageTooLarge) {
		return fiber.NewError(fiber.StatusBadRequest, "Ukuran foto terlalu besar")
	}
	return err
}

/* ===================== CollectionAdmin ===================== */

func (s *RekognitionService) CreateCollection(ctx context.Context, collectionID string) error {
	_, err := s.client.CreateCollection(ctx, &rekognition.CreateCollectionInput{
		CollectionId: aws.String(collectionID),
	})
	if err != nil {
		var exists *types.ResourceAlreadyExistsException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("buat collection gagal: %w", err)
	}
	return nil
}

func (s *RekognitionService) DeleteCollection(ctx context.Context, collectionID string) error {
	_, err := s.client.DeleteCollection(ctx, &rekognition.DeleteCollectionInput{
		CollectionId: aws.String(collectionID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("hapus collection gagal: %w", err)
	}
	return nil
}

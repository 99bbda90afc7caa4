package services

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"
	"raceshot-backend/internal/bibdetect"
	"raceshot-backend/internal/imageproc"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/supabase"
)

// PhotoService handles the upload pipeline: store the original, generate
// and store the watermarked preview, run bib detection, write the photo row.
type PhotoService struct {
	bibClient     *bibdetect.Client
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewPhotoService(
	bibClient *bibdetect.Client,
	dbClient *supabase.DatabaseClient,
	storageClient *supabase.StorageClient,
) *PhotoService {
	return &PhotoService{
		bibClient:     bibClient,
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

type UploadInput struct {
	PhotographerID uuid.UUID
	Filename       string
	ContentType    string
	Data           []byte
	EventName      string
	Price          float64
}

func (s *PhotoService) ProcessUpload(in UploadInput) (*models.Photo, error) {
	photoID := uuid.New()

	ext := filepath.Ext(in.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	storedName := photoID.String() + ext

	originalPath, err := s.storageClient.UploadOriginal(storedName, in.Data, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store original: %w", err)
	}

	preview, err := imageproc.WatermarkPreview(in.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to build preview: %w", err)
	}

	watermarkPath, err := s.storageClient.UploadWatermarked(storedName, preview, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to store preview: %w", err)
	}

	// Bib detection failing should not lose the upload; the photo can be
	// retagged later.
	var bibNumbers []string
	err = s.bibClient.RetryWithBackoff(func() error {
		var detectErr error
		bibNumbers, detectErr = s.bibClient.DetectBibNumbers(in.Data, in.ContentType)
		return detectErr
	}, 3)
	if err != nil {
		log.Printf("bib detection failed for photo %s: %v", photoID, err)
		bibNumbers = nil
	}

	photo := &models.Photo{
		ID:             photoID,
		PhotographerID: in.PhotographerID,
		EventName:      sql.NullString{String: in.EventName, Valid: in.EventName != ""},
		Price:          in.Price,
		BibNumbers:     bibNumbers,
		OriginalPath:   originalPath,
		WatermarkPath:  watermarkPath,
		PreviewURL:     s.storageClient.GetPublicURL(watermarkPath),
	}

	inserted, err := s.dbClient.InsertPhoto(photo)
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

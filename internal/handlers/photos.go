package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"raceshot-backend/internal/middleware"
	"raceshot-backend/internal/models"
	"raceshot-backend/internal/services"
	"raceshot-backend/internal/supabase"
)

const maxUploadBytes = 32 << 20

type PhotosHandler struct {
	photoService *services.PhotoService
	dbClient     *supabase.DatabaseClient
}

func NewPhotosHandler(photoService *services.PhotoService, dbClient *supabase.DatabaseClient) *PhotosHandler {
	return &PhotosHandler{
		photoService: photoService,
		dbClient:     dbClient,
	}
}

// Upload godoc
// @Summary     Upload a race photo
// @Description Stores the original, generates a watermarked preview, detects bib numbers, and creates the photo listing.
// @Tags        photos
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       photo formData file true "Image file (JPEG/PNG)"
// @Param       price formData number true "Price in USD"
// @Param       event_name formData string false "Event name"
// @Success     200 {object} models.UploadPhotoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /photos [post]
func (h *PhotosHandler) Upload(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	photographerID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid price"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing photo file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read photo file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read photo file"})
		return
	}

	photo, err := h.photoService.ProcessUpload(services.UploadInput{
		PhotographerID: photographerID,
		Filename:       fileHeader.Filename,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		Data:           data,
		EventName:      c.PostForm("event_name"),
		Price:          price,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to process upload",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UploadPhotoResponse{
		Photo:      toPhotoResponse(photo),
		BibNumbers: photo.BibNumbers,
	})
}

// ListPhotos godoc
// @Summary     List photos
// @Description Lists photos for the gallery, optionally filtered by bib number and event name.
// @Tags        photos
// @Accept      json
// @Produce     json
// @Param       bib query string false "Bib number filter"
// @Param       event query string false "Event name filter"
// @Success     200 {object} models.PhotoListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /photos [get]
func (h *PhotosHandler) ListPhotos(c *gin.Context) {
	photos, err := h.dbClient.ListPhotos(c.Query("bib"), c.Query("event"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list photos"})
		return
	}

	responses := make([]models.PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = toPhotoResponse(&photos[i])
	}

	c.JSON(http.StatusOK, models.PhotoListResponse{Photos: responses})
}

// GetPhoto godoc
// @Summary     Get a photo
// @Description Returns one photo listing by id.
// @Tags        photos
// @Accept      json
// @Produce     json
// @Param       photo_id path string true "Photo ID (UUID)"
// @Success     200 {object} models.PhotoResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /photos/{photo_id} [get]
func (h *PhotosHandler) GetPhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.dbClient.GetPhoto(photoID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found"})
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func toPhotoResponse(photo *models.Photo) models.PhotoResponse {
	resp := models.PhotoResponse{
		ID:             photo.ID.String(),
		PhotographerID: photo.PhotographerID.String(),
		Price:          photo.Price,
		BibNumbers:     photo.BibNumbers,
		PreviewURL:     photo.PreviewURL,
		CreatedAt:      photo.CreatedAt,
	}
	if photo.EventName.Valid {
		resp.EventName = photo.EventName.String
	}
	if resp.BibNumbers == nil {
		resp.BibNumbers = []string{}
	}
	return resp
}

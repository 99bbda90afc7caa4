package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"raceshot-backend/internal/supabase"
)

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co", "service-role-key", "race-photos")
	require.NoError(t, err)

	url := client.GetPublicURL("watermarked/abc.jpg")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/race-photos/watermarked/abc.jpg", url)
}

func TestStorageClient_TrailingSlashNormalized(t *testing.T) {
	client, err := supabase.NewStorageClient("https://project.supabase.co/", "service-role-key", "race-photos")
	require.NoError(t, err)

	url := client.GetPublicURL("watermarked/abc.jpg")
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/race-photos/watermarked/abc.jpg", url)
}

func TestStoragePathFormat(t *testing.T) {
	photoID := uuid.New()
	filename := photoID.String() + ".jpg"

	originalPath := "originals/" + filename
	watermarkedPath := "watermarked/" + filename

	assert.Contains(t, originalPath, "originals/")
	assert.Contains(t, watermarkedPath, "watermarked/")
	assert.Contains(t, originalPath, photoID.String())
}

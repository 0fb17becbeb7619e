package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-scanner-backend/internal/models"
	"resume-scanner-backend/internal/repositories"
	"resume-scanner-backend/internal/services"
)

func newExtractApp(t *testing.T) (*fiber.App, services.StorageService) {
	t.Helper()

	return newExtractAppAt(t, t.TempDir())
}

func newExtractAppAt(t *testing.T, root string) (*fiber.App, services.StorageService) {
	t.Helper()

	storage := services.NewStorageService(root)
	jobRepo := repositories.NewExtractionJobRepository()
	extractor := services.NewTextExtractor(services.NewPDFExtractor(), services.NewDocxExtractor())

	worker := services.NewWorker(jobRepo, storage, extractor, 1)
	worker.Start(context.Background())
	t.Cleanup(worker.Stop)

	handler := NewExtractHandler(jobRepo, storage, worker)

	app := fiber.New()
	app.Post("/extract", handler.HandleExtract)
	app.Get("/extract/:id", handler.HandleGetResult)

	return app, storage
}

func extractRequest(t *testing.T, filename, category string) *http.Request {
	t.Helper()

	payload, err := json.Marshal(models.ExtractRequest{Filename: filename, Category: category})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func pollJob(t *testing.T, app *fiber.App, id string) models.ExtractResultResponse {
	t.Helper()

	var last models.ExtractResultResponse
	require.Eventually(t, func() bool {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/extract/%s", id), nil))
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.NewDecoder(resp.Body).Decode(&last); err != nil {
			return false
		}
		return last.Status == string(models.StatusCompleted) || last.Status == string(models.StatusFailed)
	}, 5*time.Second, 50*time.Millisecond, "extraction job never finished")

	return last
}

func TestExtractStoredTextFile(t *testing.T) {
	app, storage := newExtractApp(t)

	filename := "resume_extractflow.txt"
	_, err := storage.SaveFile(models.CategoryResume, filename, []byte("Jane Doe\nSenior Gopher"))
	require.NoError(t, err)

	resp, err := app.Test(extractRequest(t, filename, "resume"))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted models.ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	assert.Equal(t, string(models.StatusQueued), accepted.Status)

	finished := pollJob(t, app, accepted.ID)
	assert.Equal(t, string(models.StatusCompleted), finished.Status)
	require.NotNil(t, finished.Result)
	assert.True(t, finished.Result.Success)
	assert.Equal(t, "Jane Doe\nSenior Gopher", finished.Result.Text)
}

func TestExtractCorruptFileEndsFailed(t *testing.T) {
	app, storage := newExtractApp(t)

	filename := "resume_notreally.pdf"
	_, err := storage.SaveFile(models.CategoryResume, filename, []byte("plain text pretending to be a pdf"))
	require.NoError(t, err)

	resp, err := app.Test(extractRequest(t, filename, "resume"))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted models.ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))

	finished := pollJob(t, app, accepted.ID)
	assert.Equal(t, string(models.StatusFailed), finished.Status)
	require.NotNil(t, finished.Result)
	assert.False(t, finished.Result.Success)
	assert.NotEmpty(t, finished.Result.Error)
	assert.Empty(t, finished.Result.Text)
}

func TestExtractMissingFile(t *testing.T) {
	app, _ := newExtractApp(t)

	resp, err := app.Test(extractRequest(t, "resume_missing.pdf", "resume"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExtractInvalidCategory(t *testing.T) {
	app, _ := newExtractApp(t)

	resp, err := app.Test(extractRequest(t, "resume_x.pdf", "cover_letter"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractUnrecognizedExtension(t *testing.T) {
	app, _ := newExtractApp(t)

	resp, err := app.Test(extractRequest(t, "resume_x.exe", "resume"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractRejectsPathTraversalFilename(t *testing.T) {
	base := t.TempDir()
	secret := filepath.Join(base, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("outside the upload root"), 0644))

	// upload root nested two levels below the secret
	app, _ := newExtractAppAt(t, filepath.Join(base, "data", "uploads"))

	for _, filename := range []string{
		"../../../secret.txt",
		"../secret.txt",
		"nested/secret.txt",
		"..",
		".",
	} {
		resp, err := app.Test(extractRequest(t, filename, "resume"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "filename %q must be rejected", filename)
	}
}

func TestExtractQueueFullReturnsServiceUnavailable(t *testing.T) {
	storage := services.NewStorageService(t.TempDir())
	jobRepo := repositories.NewExtractionJobRepository()
	extractor := services.NewTextExtractor(services.NewPDFExtractor(), services.NewDocxExtractor())

	// never started, so nothing drains the queue
	worker := services.NewWorker(jobRepo, storage, extractor, 1)
	for worker.EnqueueJob(uuid.New()) {
	}

	handler := NewExtractHandler(jobRepo, storage, worker)
	app := fiber.New()
	app.Post("/extract", handler.HandleExtract)

	filename := "resume_queuefull.txt"
	_, err := storage.SaveFile(models.CategoryResume, filename, []byte("text"))
	require.NoError(t, err)

	resp, err := app.Test(extractRequest(t, filename, "resume"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetResultUnknownJob(t *testing.T) {
	app, _ := newExtractApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/extract/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetResultInvalidJobID(t *testing.T) {
	app, _ := newExtractApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/extract/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

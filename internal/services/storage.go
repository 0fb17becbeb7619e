package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resume-scanner-backend/internal/models"
)

type StorageService interface {
	GenerateFilename(category models.Category, format models.DocumentFormat) string
	SaveFile(category models.Category, filename string, content []byte) (*models.StoredFile, error)
	ListFiles(category models.Category) ([]models.FileInfo, error)
	GetFilePath(category models.Category, filename string) string
	DeleteFile(category models.Category, filename string) error
	EnsureUploadDirs() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDirs() error {
	for _, category := range []models.Category{models.CategoryResume, models.CategoryJobDescription} {
		if err := os.MkdirAll(s.categoryDir(category), 0755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return nil
}

func (s *storageService) categoryDir(category models.Category) string {
	return filepath.Join(s.uploadPath, category.Dir())
}

// GenerateFilename produces "{prefix}_{token}.{ext}" with a random 128-bit
// hex token. Uniqueness is statistical: no check against existing files is
// made, collision odds are negligible at realistic volumes.
func (s *storageService) GenerateFilename(category models.Category, format models.DocumentFormat) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s.%s", category.Prefix(), token, format.Ext())
}

// SaveFile writes content under the category directory, creating it on
// demand. The bytes go to a temporary name first and are renamed into
// place, so a partial write is never visible under the final filename.
// The reported size is read back from disk.
func (s *storageService) SaveFile(category models.Category, filename string, content []byte) (*models.StoredFile, error) {
	dir := s.categoryDir(category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filename+".tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	finalPath := filepath.Join(dir, filename)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat stored file: %w", err)
	}

	absPath, err := filepath.Abs(finalPath)
	if err != nil {
		absPath = finalPath
	}

	return &models.StoredFile{
		Filename:  filename,
		Path:      absPath,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// ListFiles returns the regular files directly inside the category
// directory. A directory that was never created lists as empty, not as
// an error.
func (s *storageService) ListFiles(category models.Category) ([]models.FileInfo, error) {
	entries, err := os.ReadDir(s.categoryDir(category))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.FileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := make([]models.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, models.FileInfo{
			Filename:     entry.Name(),
			Size:         info.Size(),
			UploadedTime: info.ModTime(),
		})
	}

	return files, nil
}

func (s *storageService) GetFilePath(category models.Category, filename string) string {
	return filepath.Join(s.categoryDir(category), filename)
}

func (s *storageService) DeleteFile(category models.Category, filename string) error {
	if err := os.Remove(s.GetFilePath(category, filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

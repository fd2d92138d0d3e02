package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

// Allowed design proof extensions
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".pdf":  true,
}

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	filename = filepath.Base(filename)
	reg := regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	return reg.ReplaceAllString(filename, "")
}

// ValidateDesignFileType checks if the file extension is allowed
func ValidateDesignFileType(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported design file format. Allowed formats: jpg, jpeg, png, gif, svg, pdf")
	}
	return nil
}

// InitializeStorage creates necessary directories for file storage
func InitializeStorage() error {
	dirs := []string{
		uploadBaseDir,
		filepath.Join(uploadBaseDir, "designs"),
		filepath.Join(uploadBaseDir, "thumbnails"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// SaveDesignFile writes an uploaded design proof under uploads/designs
// and returns its relative path
func SaveDesignFile(fileData []byte, filename string) (string, error) {
	if len(fileData) > maxFileSize {
		return "", fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}

	cleanName := cleanFilename(filename)
	if err := ValidateDesignFileType(cleanName); err != nil {
		return "", err
	}

	if err := InitializeStorage(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(uploadBaseDir, "designs", cleanName)
	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return fullPath, nil
}

// GenerateDesignThumbnail renders a 320px-wide thumbnail for a design
// proof. PDF and SVG proofs get no thumbnail.
func GenerateDesignThumbnail(designPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(designPath))
	if ext == ".pdf" || ext == ".svg" {
		return "", nil
	}

	img, err := imaging.Open(designPath)
	if err != nil {
		return "", fmt.Errorf("failed to open design file: %v", err)
	}

	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	name := strings.TrimSuffix(filepath.Base(designPath), ext)
	thumbPath := filepath.Join(uploadBaseDir, "thumbnails", name+"_thumb.jpg")
	if err := imaging.Save(resized, thumbPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return thumbPath, nil
}

package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const thumbnailMaxWidth = 480

// UploadProgressPhoto stores the day's progress photo, writes a scaled
// thumbnail next to it and marks the photo rule complete.
func (a *API) UploadProgressPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login required")
		return
	}

	date, err := parseLogDate(c, false)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no photo in request")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	fullPath := filepath.Join(a.uploadDir, name)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save photo")
		return
	}

	if err := writeThumbnail(fullPath, thumbnailPath(fullPath)); err != nil {
		// The original is saved; a missing thumbnail is not fatal.
		c.Error(err)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(a.uploadURL, "/"), name)
	if err := a.logs.SetProgressPhoto(userID, date, url); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to record photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "date": formatDate(date)})
}

func thumbnailPath(fullPath string) string {
	ext := filepath.Ext(fullPath)
	return strings.TrimSuffix(fullPath, ext) + "_thumb.jpg"
}

// writeThumbnail downscales the stored image to thumbnailMaxWidth and
// writes it as jpeg. Images already small enough are copied as-is.
func writeThumbnail(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > thumbnailMaxWidth {
		height = height * thumbnailMaxWidth / width
		width = thumbnailMaxWidth
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

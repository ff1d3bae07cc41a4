package inkpress

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// Image describes an uploaded cover image.
type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int    `json:"size"`
}

// processImage decodes an image from src, resizes it down to maxImageWidth
// if wider, and re-encodes it as JPEG.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	filename := Slugify(base) + ".jpg"

	return Image{
		Filename: filename,
		Width:    w,
		Height:   h,
		Size:     buf.Len(),
	}, buf.Bytes(), nil
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

// ensureUniqueFilename appends a counter while the filename exists on disk.
func (a *App) ensureUniqueFilename(img *Image) {
	dir := a.uploadsDir()
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			break
		}
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
	img.Filename = candidate
}

// handleImageUpload accepts a multipart image, resizes and stores it under
// the static dir, and returns the URL to reference as a coverImage.
func (a *App) handleImageUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return jsonError(c, http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid image")
	}

	a.ensureUniqueFilename(&img)

	if err := os.MkdirAll(a.uploadsDir(), 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.uploadsDir(), img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	img.URL = "/public/" + uploadsSubdir + "/" + img.Filename
	return c.JSON(http.StatusCreated, img)
}

func (a *App) handleImageList(c echo.Context) error {
	entries, err := os.ReadDir(a.uploadsDir())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	images := []Image{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename: e.Name(),
			URL:      "/public/" + uploadsSubdir + "/" + e.Name(),
			Size:     int(info.Size()),
		})
	}
	return c.JSON(http.StatusOK, map[string][]Image{"images": images})
}

func (a *App) handleImageDelete(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || filename != filepath.Base(filename) {
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

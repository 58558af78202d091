package folio

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	maxUploadSize = 10 << 20 // 10 MB
	maxImageWidth = 800
	jpegQuality   = 80
	uploadSubdir  = "uploads"
)

// handleImageUpload accepts a cover or inline image, scales it down to the
// display width, re-encodes it as JPEG, and stores it under the static
// uploads directory.
func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image field")
	}
	if file.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported image format")
	}

	img = scaleDown(img, maxImageWidth)

	dir := filepath.Join(a.staticDir, uploadSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename, err := uniqueFilename(dir, file.Filename)
	if err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := jpeg.Encode(dst, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return err
	}

	bounds := img.Bounds()
	a.Log.Info("image uploaded",
		zap.String("filename", filename),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	return c.JSON(http.StatusCreated, Image{
		Filename:     filename,
		OriginalName: file.Filename,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		UploadedAt:   time.Now().UTC(),
	})
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	dir := filepath.Join(a.staticDir, uploadSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusOK, map[string]interface{}{"images": []Image{}})
		}
		return err
	}
	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename:   entry.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"images": images})
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" || filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filename")
	}
	path := filepath.Join(a.staticDir, uploadSubdir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound, "image not found")
		}
		return err
	}
	a.Log.Info("image deleted", zap.String("filename", filename))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// scaleDown resizes img to at most maxWidth pixels wide, preserving aspect
// ratio. Images already narrow enough pass through untouched.
func scaleDown(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return img
	}
	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// uniqueFilename slugs the original name, forces a .jpg extension, and
// appends a numeric suffix if the name is already taken.
func uniqueFilename(dir, original string) (string, error) {
	base := Slugify(strings.TrimSuffix(original, filepath.Ext(original)))
	if base == "" {
		base = "image"
	}
	for i := 0; i < 1000; i++ {
		name := base + ".jpg"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.jpg", base, i)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free filename for %q", base)
}

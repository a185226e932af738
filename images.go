package showcase

import (
	"bytes"
	"context"
	"errors"
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
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/eringen/showcase/content"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 82
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

var errBadImage = errors.New("not a supported image")

// processImage decodes an image from src, resizes it to maxImageWidth if
// wider, and encodes it as JPEG. Returns metadata and the encoded bytes.
func processImage(src io.Reader, originalName string) (content.Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return content.Image{}, nil, fmt.Errorf("%w: %v", errBadImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxImageWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return content.Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return content.Image{
		Filename:     slugifyFilename(originalName) + ".jpg",
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if slug := Slugify(base); slug != "" {
		return slug
	}
	return "image"
}

// uniqueFilename appends a counter until the name is free both on disk and
// in the images table.
func (a *App) uniqueFilename(ctx context.Context, filename string) (string, error) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(filename, ".jpg")
	candidate := filename
	for n := 2; ; n++ {
		_, statErr := os.Stat(filepath.Join(dir, candidate))
		taken, err := a.Store.Images.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if statErr != nil && !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, n)
	}
}

func (a *App) renderImages(c echo.Context, status int, notice Notice) error {
	page := ImagesPage{
		Meta:   a.meta("Images", "", "admin", "images"),
		Notice: notice,
		CSRF:   CsrfToken(c),
	}
	images, err := a.Store.Images.List(c.Request().Context())
	if err != nil {
		a.Log.Warn("list images", zap.Error(err))
		page.Notice = Notice{Kind: NoticeError, Message: "Images could not be loaded. Reload to try again."}
	}
	page.Images = orEmpty(images)
	return RenderStatus(c, status, a.Views.AdminImages(page))
}

func (a *App) handleImages(c echo.Context) error {
	return a.renderImages(c, http.StatusOK, adminNotice(c))
}

func (a *App) handleImageUpload(c echo.Context) error {
	uploadFailed := func(status int, msg string) error {
		return a.renderImages(c, status, Notice{Kind: NoticeError, Message: msg})
	}
	file, err := c.FormFile("image")
	if err != nil {
		return uploadFailed(http.StatusBadRequest, "Choose an image to upload.")
	}
	if file.Size > maxUploadSize {
		return uploadFailed(http.StatusRequestEntityTooLarge, "That file is too large (max 10MB).")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if errors.Is(err, errBadImage) {
		return uploadFailed(http.StatusUnprocessableEntity, "That file is not a JPEG, PNG or GIF image.")
	}
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if img.Filename, err = a.uniqueFilename(ctx, img.Filename); err != nil {
		return err
	}
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	path := filepath.Join(dir, img.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.Images.Save(ctx, img); err != nil {
		_ = os.Remove(path)
		a.logMutation(c, "image", err)
		return uploadFailed(storeStatus(err), mutationNotice(err).Message)
	}
	return redirectAdmin(c, "/admin/images/", "image-uploaded")
}

func (a *App) handleImageDelete(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" || filepath.Base(filename) != filename {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filename")
	}
	err := a.Store.Images.Delete(c.Request().Context(), filename)
	if errors.Is(err, content.ErrNotFound) {
		return redirectAdmin(c, "/admin/images/", "already-deleted")
	}
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(a.staticDir, uploadsSubdir, filename)); err != nil && !os.IsNotExist(err) {
		a.Log.Warn("remove image file", zap.String("filename", filename), zap.Error(err))
	}
	return redirectAdmin(c, "/admin/images/", "image-deleted")
}

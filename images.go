package communitysite

import (
	"bytes"
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

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// processImage decodes an uploaded image, scales it down to maxImageWidth when
// wider, and re-encodes it as JPEG. Returns the encoded bytes and metadata.
func processImage(src io.Reader) (ImageMeta, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return ImageMeta{}, nil, fmt.Errorf("decode image: %w", err)
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
		return ImageMeta{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return ImageMeta{Width: w, Height: h, Size: int64(buf.Len()), Format: "jpeg"}, buf.Bytes(), nil
}

// handleGalleryImageUpload accepts a multipart image, processes it, stores the
// file under the upload directory, and records it on the gallery.
func (a *App) handleGalleryImageUpload(c echo.Context) error {
	viewer := a.currentViewer(c)
	id, err := idParam(c, "id")
	if err != nil {
		return notFoundPage(c)
	}
	gallery, err := a.Store.GetGalleryByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	if !CanEditOwned(viewer, gallery.UserID) {
		return forbiddenPage(c)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return validationFailed(c, ValidationErrors{"image": "an image file is required"})
	}
	if file.Size > maxUploadSize {
		return validationFailed(c, ValidationErrors{"image": "image may not exceed 10MB"})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	meta, data, err := processImage(src)
	if err != nil {
		return validationFailed(c, ValidationErrors{"image": "the file is not a valid image"})
	}

	dir := filepath.Join(a.Config.UploadDir, "galleries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	filename := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	img := GalleryImage{
		GalleryID: gallery.ID,
		ImagePath: "galleries/" + filename,
		AltText:   c.FormValue("alt_text"),
		Caption:   c.FormValue("caption"),
		Meta:      meta,
	}
	if err := a.Store.AddGalleryImage(&img); err != nil {
		return err
	}
	a.Log.Info().Int64("gallery_id", gallery.ID).Str("path", img.ImagePath).Msg("gallery image uploaded")
	return c.JSON(http.StatusCreated, img)
}

// handleGalleryImageDelete removes an image row and its file on disk.
func (a *App) handleGalleryImageDelete(c echo.Context) error {
	viewer := a.currentViewer(c)
	imageID, err := idParam(c, "imageID")
	if err != nil {
		return notFoundPage(c)
	}
	img, err := a.Store.GetGalleryImage(imageID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundPage(c)
		}
		return err
	}
	gallery, err := a.Store.GetGalleryByID(img.GalleryID)
	if err != nil {
		return err
	}
	if !CanEditOwned(viewer, gallery.UserID) {
		return forbiddenPage(c)
	}
	if err := a.Store.DeleteGalleryImage(imageID); err != nil {
		return err
	}
	// The row is authoritative; a missing file is not an error.
	_ = os.Remove(filepath.Join(a.Config.UploadDir, filepath.FromSlash(img.ImagePath)))
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"reelpress/internal/apperr"
	"reelpress/internal/storage"
)

const (
	// presignExpiry is how long a presigned upload URL stays valid.
	presignExpiry = 15 * time.Minute

	// maxUploadSize bounds the multipart fallback endpoint.
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum generated thumbnail width in pixels.
	thumbMaxWidth = 480

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80
)

// uploadableTypes whitelists content types accepted for upload.
var uploadableTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
}

// thumbableTypes are image types the multipart endpoint can downscale.
// webp decode is not wired, so webp uploads skip the thumbnail.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type presignRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Folder      string `json:"folder"`
}

type presignResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
}

// PresignUpload issues a presigned PUT URL so the admin browser uploads
// the file straight to object storage, bypassing this server.
func (a *Admin) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondErr(w, apperr.Validation("file storage is not configured"))
		return
	}

	var req presignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := requireString("file name", req.FileName, maxFileNameLen); err != nil {
		respondErr(w, err)
		return
	}
	if !uploadableTypes[req.ContentType] {
		respondErr(w, apperr.Validation("unsupported content type"))
		return
	}
	if !storage.ValidFolder(req.Folder) {
		respondErr(w, apperr.Validation("unknown upload folder"))
		return
	}

	key := storage.ObjectKey(storage.Folder(req.Folder), req.FileName)
	uploadURL, err := a.storageClient.PresignUpload(r.Context(), key, req.ContentType, presignExpiry)
	if err != nil {
		respondErr(w, apperr.Upstream("presigning upload", err))
		return
	}

	respondOK(w, presignResponse{
		UploadURL: uploadURL,
		PublicURL: a.storageClient.FileURL(key),
		Key:       key,
	})
}

type uploadResponse struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url,omitempty"`
	Key      string `json:"key"`
}

// Upload is the multipart fallback for clients that cannot do a
// browser-direct PUT. Images also get a downscaled JPEG thumbnail in
// the thumbnails folder; a thumbnail failure never fails the upload.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondErr(w, apperr.Validation("file storage is not configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondErr(w, apperr.Validation("invalid multipart request"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondErr(w, apperr.Validation("file field is required"))
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if !storage.ValidFolder(folder) {
		respondErr(w, apperr.Validation("unknown upload folder"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !uploadableTypes[contentType] {
		respondErr(w, apperr.Validation("unsupported content type"))
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondErr(w, apperr.Upstream("reading upload", err))
		return
	}

	key := storage.ObjectKey(storage.Folder(folder), header.Filename)
	if err := a.storageClient.Upload(r.Context(), key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		respondErr(w, apperr.Upstream("uploading file", err))
		return
	}

	resp := uploadResponse{URL: a.storageClient.FileURL(key), Key: key}

	if thumbableTypes[contentType] {
		if thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth); err == nil {
			thumbKey := storage.ObjectKey(storage.FolderThumbnails, thumbName(header.Filename))
			if err := a.storageClient.Upload(r.Context(), thumbKey, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err == nil {
				resp.ThumbURL = a.storageClient.FileURL(thumbKey)
			}
		}
	}

	respondCreated(w, resp)
}

// thumbName swaps the extension for .jpg since thumbnails are always JPEG.
func thumbName(fileName string) string {
	if idx := strings.LastIndexByte(fileName, '.'); idx != -1 {
		fileName = fileName[:idx]
	}
	return fileName + ".jpg"
}

// generateThumbnail decodes an image and downscales it to at most
// maxWidth pixels wide, preserving aspect ratio, encoded as JPEG.
func generateThumbnail(r io.Reader, maxWidth int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > maxWidth {
		height = height * maxWidth / width
		width = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// handlers/upload.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"p9e.in/homepro/middleware"
)

const defaultBucket = "project-images"

func bucketName() string {
	if b := os.Getenv("GCS_BUCKET"); b != "" {
		return b
	}
	return defaultBucket
}

// UploadProjectImageHandler routes to GCS or local storage based on environment
func UploadProjectImageHandler(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != "" // Cloud Run indicator

	if useGCS {
		UploadProjectImage(w, r)
	} else {
		UploadProjectImageLocal(w, r)
	}
}

// objectPath builds {contractor_id}/{timestamp}-{random}.{ext}
func objectPath(contractorID, originalName string) string {
	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%d-%d.%s", contractorID, time.Now().UnixMilli(), rand.Intn(1_000_000), ext)
}

// UploadProjectImage stores a project image in the GCS bucket and returns
// its public URL
// POST /api/v1/uploads/project-image (multipart, field "file")
func UploadProjectImage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	bucket := bucketName()
	object := objectPath(userID, header.Filename)

	wc := client.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := wc.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      url,
		"filename": object,
	})
}

type deleteImageReq struct {
	URL string `json:"url"`
}

// DeleteProjectImage removes an image by its stored public URL. The object
// path is everything after the bucket segment.
// DELETE /api/v1/uploads/project-image
func DeleteProjectImage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req deleteImageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	bucket := bucketName()
	marker := "/" + bucket + "/"
	idx := strings.Index(req.URL, marker)
	if idx < 0 {
		http.Error(w, "url does not point into the project images bucket", http.StatusBadRequest)
		return
	}
	object := req.URL[idx+len(marker):]

	// users may only delete their own objects
	if !strings.HasPrefix(object, userID+"/") {
		http.Error(w, "not your object", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	if err := client.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			http.Error(w, "object not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete object: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "image deleted"})
}

package dto

import "time"

// FileMetadataRequest body para crear o editar metadatos de un archivo.
// En POST /api/files, Filename y Path son obligatorios (el archivo ya está en disco).
type FileMetadataRequest struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	RelatedType  string `json:"related_type"`
	RelatedID    *int64 `json:"related_id,omitempty"`
}

// UploadRequest campos de formulario que acompañan al archivo en POST /upload.
type UploadRequest struct {
	OriginalName string
	Size         int64
	Category     string
	Description  string
	RelatedType  string
	RelatedID    *int64
}

// FileResponse metadatos de un archivo.
type FileResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	RelatedType  string    `json:"related_type,omitempty"`
	RelatedID    *int64    `json:"related_id,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

package entity

import "time"

// StoredFile metadatos de un archivo subido; el contenido vive en disco.
type StoredFile struct {
	ID           int64
	Filename     string // nombre en disco
	OriginalName string
	Path         string // ruta pública, /uploads/<filename>
	MimeType     string
	Size         int64
	Category     string
	Description  string
	RelatedType  string
	RelatedID    *int64
	UploadedAt   time.Time
}

package models

import "time"

// Image - метаданные загруженного изображения.
// Сами байты лежат в storage.Storage под ключом Key.
type Image struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	MimeType     string    `json:"mimeType"`
	OriginalName string    `json:"originalName"`
	Key          string    `json:"-"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
}

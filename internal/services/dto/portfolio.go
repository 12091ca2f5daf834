package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"portfolio_backend/internal/models"
)

// Имена multipart-полей
const (
	FieldData         = "data"
	FieldProfileImage = "profileImage"
	MaxProjectImages  = 3
)

// ProjectImageField - имя поля изображения проекта с индексом i
func ProjectImageField(i int) string {
	return fmt.Sprintf("portfolioImage%d", i)
}

// PortfolioPayload - содержимое поля data.
// Разделы, которых нет в JSON, остаются nil: при обновлении они не трогаются.
type PortfolioPayload struct {
	Hero         *models.Hero          `json:"hero,omitempty"`
	About        *models.About         `json:"about,omitempty"`
	Skills       *[]string             `json:"skills,omitempty"`
	Services     *[]models.Service     `json:"services,omitempty"`
	Projects     *[]ProjectPayload     `json:"portfolio,omitempty"`
	Testimonials *[]models.Testimonial `json:"testimonials,omitempty"`
	Blog         *models.Blog          `json:"blog,omitempty"`
	Contact      *models.Contact       `json:"contact,omitempty"`
	Template     *string               `json:"template,omitempty"`
}

// ProjectPayload - проект без imageId: id изображений назначает сервер
type ProjectPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Github       string   `json:"github,omitempty"`
	Live         string   `json:"live,omitempty"`
}

var ErrEmptyPayload = errors.New("data field is empty")

// ParsePayload разбирает JSON из поля data
func ParsePayload(raw string) (*PortfolioPayload, error) {
	if raw == "" {
		return nil, ErrEmptyPayload
	}
	var p PortfolioPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadedFile - принятый и проверенный файл из multipart-запроса
type UploadedFile struct {
	Field    string
	Name     string
	MimeType string
	Data     []byte
}

// PortfolioFiles - файлы одного запроса create/update.
// Projects индексируется позицией проекта в payload.
type PortfolioFiles struct {
	Profile  *UploadedFile
	Projects map[int]*UploadedFile
}

// Project возвращает файл проекта i или nil
func (f *PortfolioFiles) Project(i int) *UploadedFile {
	if f == nil || f.Projects == nil {
		return nil
	}
	return f.Projects[i]
}

// ProfileFile возвращает файл профиля или nil
func (f *PortfolioFiles) ProfileFile() *UploadedFile {
	if f == nil {
		return nil
	}
	return f.Profile
}

type MessageResponse struct {
	Message string `json:"message"`
}

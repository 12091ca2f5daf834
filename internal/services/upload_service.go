package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

// ============================================
// UPLOAD SERVICE
// ============================================

// UploadService принимает файлы из multipart-запроса.
// Отклоненный файл останавливает запрос до того, как он дойдет до хранилища.
type UploadService interface {
	ReadFiles(ctx context.Context, form *multipart.Form) (*dto.PortfolioFiles, error)
}

type UploadConfig struct {
	MaxFileSize   int64
	AllowedPrefix string
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:   5 * 1024 * 1024, // 5MB
		AllowedPrefix: "image/",
	}
}

type uploadService struct {
	config *UploadConfig
}

func NewUploadService(config *UploadConfig) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &uploadService{config: config}
}

// ReadFiles читает profileImage и portfolioImage0..2.
// Остальные файловые поля игнорируются.
func (s *uploadService) ReadFiles(ctx context.Context, form *multipart.Form) (*dto.PortfolioFiles, error) {
	files := &dto.PortfolioFiles{Projects: make(map[int]*dto.UploadedFile)}
	if form == nil {
		return files, nil
	}

	profile, err := s.readField(ctx, form, dto.FieldProfileImage)
	if err != nil {
		return nil, err
	}
	files.Profile = profile

	for i := 0; i < dto.MaxProjectImages; i++ {
		f, err := s.readField(ctx, form, dto.ProjectImageField(i))
		if err != nil {
			return nil, err
		}
		if f != nil {
			files.Projects[i] = f
		}
	}

	return files, nil
}

func (s *uploadService) readField(ctx context.Context, form *multipart.Form, field string) (*dto.UploadedFile, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]

	if err := s.validateSize(header.Size); err != nil {
		logger.CtxWarn(ctx, "upload rejected: too large", "field", field, "size", header.Size)
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.ErrMalformedUpload
	}
	defer src.Close()

	// читаем на байт больше лимита, чтобы не верить заявленному размеру
	data, err := io.ReadAll(io.LimitReader(src, s.config.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if err := s.validateSize(int64(len(data))); err != nil {
		return nil, err
	}

	mimeType := detectMimeType(header.Header.Get("Content-Type"), data)
	if !strings.HasPrefix(mimeType, s.config.AllowedPrefix) {
		logger.CtxWarn(ctx, "upload rejected: not an image", "field", field, "mime", mimeType)
		return nil, apperrors.ErrInvalidFileType
	}

	return &dto.UploadedFile{
		Field:    field,
		Name:     header.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

func (s *uploadService) validateSize(size int64) error {
	if size > s.config.MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

// detectMimeType берет заявленный клиентом тип, а если его нет, определяет по содержимому
func detectMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.SplitN(declared, ";", 2)[0])
	if declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared)
	}
	mt := mimetype.Detect(data)
	return strings.SplitN(mt.String(), ";", 2)[0]
}

// extensionFor возвращает расширение файла для MIME-типа
func extensionFor(mimeType, originalName string) string {
	if mt := mimetype.Lookup(mimeType); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	if i := strings.LastIndex(originalName, "."); i >= 0 && i < len(originalName)-1 {
		return strings.ToLower(originalName[i:])
	}
	return ""
}

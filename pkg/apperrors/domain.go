package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики (оборачивают ошибки репозиториев и парсинга)
// =========================================================================

// ErrInvalidPayload - поле data не удалось разобрать как JSON (400)
func ErrInvalidPayload(err error) *AppError {
	return Wrap(err, CodeInvalidPayload, "portfolio", "Invalid data format", http.StatusBadRequest)
}

// ErrPortfolioNotFound - портфолио с таким id нет (404)
func ErrPortfolioNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "portfolio", "Portfolio not found", http.StatusNotFound)
}

// ErrImageNotFound - изображения с таким id нет (404)
func ErrImageNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "image", "Image not found", http.StatusNotFound)
}

// ErrStorage - сбой носителя изображений (500)
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Image storage failure", http.StatusInternalServerError)
}

// =========================================================================
// Предопределенные ошибки загрузки
// =========================================================================

// ErrFileTooLarge - файл больше допустимого размера
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrInvalidFileType - MIME-тип файла не image/*
var ErrInvalidFileType = New(
	CodeUnsupportedMedia,
	"upload",
	"Only image files are allowed!",
	http.StatusUnsupportedMediaType, // 415
)

// ErrMalformedUpload - multipart-тело не удалось прочитать
var ErrMalformedUpload = New(
	CodeInvalidPayload,
	"upload",
	"Malformed multipart body",
	http.StatusBadRequest,
)

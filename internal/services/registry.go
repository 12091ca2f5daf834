package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	PortfolioService PortfolioService
	ImageService     ImageService
	UploadService    UploadService
}

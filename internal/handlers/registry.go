package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	PortfolioHandler *PortfolioHandler
	ImageHandler     *ImageHandler
	SystemHandler    *SystemHandler
}

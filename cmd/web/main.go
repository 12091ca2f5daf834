// @title           Portfolio Generator API
// @version         1.0
// @description     API конструктора портфолио: портфолио, изображения и каталог шаблонов.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /

package main

import "portfolio_backend/internal/app"

func main() {
	app.Run()
}

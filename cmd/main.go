// cmd/main.go
package main

import (
	"go-voice-api/app"

	_ "go-voice-api/docs"
)

// @title           Go-Voice API
// @version         1.0
// @description     Multi-tenant voice-agent platform API.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}

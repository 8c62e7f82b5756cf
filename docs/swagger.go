// Package docs provides Swagger documentation for the API.
package docs

// @title Campaign Operations API
// @version 1.0
// @description Multi-tenant campaign hierarchy backend

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

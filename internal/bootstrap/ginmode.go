package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode turns off gin's debug output outside development and tests.
func SetGinMode(env string) {
	switch env {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

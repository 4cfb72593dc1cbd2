package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (auth, users, books, debug) that mounts its
// routes on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

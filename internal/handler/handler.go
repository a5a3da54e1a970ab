package handler

import (
	"log"
	"net/http"

	"attendify/pkg/apperror"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the standard envelope. Upstream
// detail goes to the log, never to the caller.
func respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Println("ERROR:", err)
	}
	c.JSON(status, response.Error(status, apperror.PublicMessage(err)))
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

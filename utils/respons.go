package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondAppError maps a core error to its HTTP status and exposes the
// stable error kind alongside the message.
func RespondAppError(c *gin.Context, err error) {
	code := HTTPStatus(err)
	msg := err.Error()
	if KindOf(err) == KindInternal {
		// Do not leak internal failure detail to clients.
		if ErrorLogger != nil {
			ErrorLogger.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		msg = "internal server error"
	}
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: msg,
		Kind:    string(KindOf(err)),
	})
}

package util

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	log.Println("database error occurred", err)
	return &DbHTTPErr
}

// BuildJSONBindHTTPErr converts a gin binding failure into a 400. Validator
// failures list every violated field rule; anything else is reported as a
// malformed body.
func BuildJSONBindHTTPErr(err error) *HTTPError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		violations := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			violations[i] = fmt.Sprintf("%v failed on '%v'", fieldErr.Field(), fieldErr.Tag())
		}
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Message: strings.Join(violations, "; "),
		}
	}
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "malformed request body",
	}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}

type HandlerOpts struct {
	SuccessStatus int
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

// HandlerWrapper adapts a data-or-error handler into a gin handler with the
// standard response envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			c.Abort()
			return
		}
		status := opts.SuccessStatus
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

/*
	HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.JSON(err.Status, gin.H{
		"success": false,
		"message": err.Message,
	})
}

// Package serdser contains the (de)serialization helpers which are
// shared by the resource packages. Binding errors are reported as a
// map from the json field names to their error messages, while the
// use case errors are reported as a {"detail": "..."} object.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
)

// InternalErrorDetail is reported for unexpected errors. Their actual
// messages are only logged.
const InternalErrorDetail = "something went wrong"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName returns the name of the first non-empty json, form, or uri
// tag of f, so validation errors use the names which clients send.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return f.Name
}

// Bind decodes the request into req using b binding and validates it.
// In case of errors, a 400 response is written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return handleBindErr(c, c.ShouldBindWith(req, b))
}

// BindURI is like Bind, but decodes the path params.
func BindURI(c *gin.Context, req any) bool {
	return handleBindErr(c, c.ShouldBindUri(req))
}

func handleBindErr(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case nil:
		return true
	case *validator.InvalidValidationError:
		log.Error(c, "invalid validation", log.Err("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": InternalErrorDetail,
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as the response. The cerr.Error instances are
// reported with their status code and message. Other errors are
// logged and reported as a generic 500 response.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c, "request failed",
		slog.String("path", c.FullPath()), log.Err("err", err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": InternalErrorDetail,
	})
}

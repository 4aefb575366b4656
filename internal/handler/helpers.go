package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"optiops/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Success: false, Message: "Invalid request body: " + err.Error()})
		return false
	}
	return validateStruct(c, req)
}

// bindFormAndValidate is the form-post variant used by the machine modals.
func bindFormAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Success: false, Message: "Invalid form data: " + err.Error()})
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Success: false, Message: "Invalid user data."})
		return false
	}
	return true
}

// idParam parses the numeric :id path segment. Writes the error response and
// returns false on garbage input.
func idParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, apierror.Envelope{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(n), true
}

// parseOptionalID parses a numeric query value; empty or garbage input maps
// to 0 (no exclusion).
func parseOptionalID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// fail writes the standard failure envelope with the status mapped from the
// error's kind.
func fail(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.Fail(err))
}

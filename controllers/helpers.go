package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"motohub/utils"

	"github.com/go-playground/validator/v10"
)

// RequestTimeout bounds every store and provider call made by a handler.
var RequestTimeout = 5 * time.Second

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), RequestTimeout)
}

// decodeJSON reads the body into dst and validates it.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return utils.NewHTTPError(http.StatusBadRequest, "Invalid input", err)
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("%s is invalid", fe.Field())
		if strings.HasPrefix(fe.Tag(), "required") {
			msg = fmt.Sprintf("%s is required", fe.Field())
		}
		return utils.NewHTTPError(http.StatusBadRequest, msg, err)
	}
	return utils.NewHTTPError(http.StatusBadRequest, "Invalid input", err)
}

// validateObjectID checks an identifier taken from a path, header or query.
func validateObjectID(name, value string) error {
	if err := validate.Var(value, "required,mongodb"); err != nil {
		return utils.NewHTTPError(http.StatusBadRequest, "invalid "+name, err)
	}
	return nil
}

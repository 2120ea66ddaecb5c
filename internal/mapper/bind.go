package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"storefront-backend/pkg/errs"
)

var registerNames sync.Once

// useWireNames makes validator report json/form names instead of Go field
// names, so messages read "min_price: ..." rather than "MinPrice: ...".
func useWireNames() {
	registerNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// BindQuery decodes and validates the query string into obj.
func BindQuery(c *gin.Context, obj interface{}) error {
	useWireNames()
	return translate(c.ShouldBindQuery(obj))
}

// BindJSON decodes and validates the JSON body into obj.
func BindJSON(c *gin.Context, obj interface{}) error {
	useWireNames()
	return translate(c.ShouldBindJSON(obj))
}

// Validate runs the binding constraints of obj without decoding anything.
func Validate(obj interface{}) error {
	useWireNames()
	return translate(binding.Validator.ValidateStruct(obj))
}

// translate turns binding failures into an errs.ValidationError naming the
// first offending field only.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errs.NewValidationError(fieldPath(fe), reason(fe))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.NewValidationError(typeErr.Field, "expected "+typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewValidationError("", "malformed JSON body")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return errs.NewValidationError("", fmt.Sprintf("invalid value %q", numErr.Num))
	}

	return errs.NewValidationError("", "invalid input")
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

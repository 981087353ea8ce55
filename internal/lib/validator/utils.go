package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"

	"yamdb/proj/internal/utils"
)

func getFieldName(obj any, origFieldName string) (fieldName string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			fieldName = jsonName
		}
	} else {
		fieldName = utils.CamelToSnake(origFieldName)
	}
	return
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "email":
			errorMsg = "Value must be a valid email address"
		case "releaseyear":
			errorMsg = "Release year must be in the past"
		case "username":
			errorMsg = "Username may contain only letters, numbers and @/./+/-/_"
		case "reserved":
			errorMsg = "This username is reserved"
		case "slug":
			errorMsg = "Value must be a valid slug"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

var usernameRegexp = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateReleaseYear accepts past years only; the current calendar year is
// rejected.
func ValidateReleaseYear(fl govalidator.FieldLevel) bool {
	return fl.Field().Int() < int64(time.Now().Year())
}

func ValidateUsername(fl govalidator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}

// ValidateNotReserved returns a validator closed over the configured
// banned-name set.
func ValidateNotReserved(bannedNames []string) govalidator.Func {
	return func(fl govalidator.FieldLevel) bool {
		name := fl.Field().String()
		for _, banned := range bannedNames {
			if name == banned {
				return false
			}
		}
		return true
	}
}

func ValidateSlug(fl govalidator.FieldLevel) bool {
	return utils.IsValidSlug(fl.Field().String())
}

// Register wires the custom validators into a validator instance.
func Register(v *govalidator.Validate, bannedNames []string) {
	mustRegister := func(tag string, fn govalidator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	mustRegister("releaseyear", ValidateReleaseYear)
	mustRegister("username", ValidateUsername)
	mustRegister("reserved", ValidateNotReserved(bannedNames))
	mustRegister("slug", ValidateSlug)
}

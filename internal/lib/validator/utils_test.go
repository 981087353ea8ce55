package validator

import (
	"fmt"
	"testing"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newValidator(t *testing.T) *govalidator.Validate {
	t.Helper()
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	Register(v, []string{"me"})
	return v
}

func TestValidateReleaseYear(t *testing.T) {
	v := newValidator(t)
	type input struct {
		Year int32 `json:"year" validate:"releaseyear"`
	}
	currentYear := int32(time.Now().Year())

	cases := []struct {
		year  int32
		valid bool
	}{
		{currentYear - 1, true},
		{1895, true},
		{currentYear, false},
		{currentYear + 1, false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("year=%d", c.year), func(t *testing.T) {
			errs := ValidateStruct(v, input{Year: c.year})
			if c.valid {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, "year")
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	v := newValidator(t)
	type input struct {
		Username string `json:"username" validate:"username,reserved"`
	}

	assert.Empty(t, ValidateStruct(v, input{Username: "alice.smith+test@x_1-2"}))

	errs := ValidateStruct(v, input{Username: "bad name"})
	assert.Equal(t, "Username may contain only letters, numbers and @/./+/-/_", errs["username"])

	errs = ValidateStruct(v, input{Username: "me"})
	assert.Equal(t, "This username is reserved", errs["username"])
}

func TestValidateSlug(t *testing.T) {
	v := newValidator(t)
	type input struct {
		Slug string `json:"slug" validate:"slug"`
	}
	assert.Empty(t, ValidateStruct(v, input{Slug: "sci-fi"}))
	assert.Contains(t, ValidateStruct(v, input{Slug: "Sci Fi"}), "slug")
}

func TestErrorMsgOverride(t *testing.T) {
	v := newValidator(t)
	type input struct {
		Score int `json:"score" validate:"min=1,max=10" errorMsg:"Score from 1 to 10!"`
	}
	errs := ValidateStruct(v, input{Score: 11})
	assert.Equal(t, "Score from 1 to 10!", errs["score"])
}

func TestFieldNameDerivedFromJSONTag(t *testing.T) {
	v := newValidator(t)
	type input struct {
		ConfirmationCode string `json:"confirmation_code" validate:"required"`
	}
	errs := ValidateStruct(v, input{})
	assert.Contains(t, errs, "confirmation_code")
}

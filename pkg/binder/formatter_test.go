package binder

import (
	"reflect"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
)

type mockFieldError struct {
	tag   string
	field string
	param string
	kind  reflect.Kind
}

func (e *mockFieldError) Error() string           { return "Mock Field Error" }
func (e *mockFieldError) Tag() string             { return e.tag }
func (e *mockFieldError) ActualTag() string       { return e.tag }
func (e *mockFieldError) Namespace() string       { return "" }
func (e *mockFieldError) StructNamespace() string { return "" }
func (e *mockFieldError) Field() string           { return e.field }
func (e *mockFieldError) StructField() string     { return "" }
func (e *mockFieldError) Value() interface{}      { return "" }
func (e *mockFieldError) Param() string           { return e.param }
func (e *mockFieldError) Kind() reflect.Kind {
	if e.kind == 0 {
		return reflect.String
	}
	return e.kind
}
func (e *mockFieldError) Type() reflect.Type               { return reflect.TypeOf("") }
func (e *mockFieldError) Translate(_ ut.Translator) string { return "" }

func TestFormatValidationError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tag   string
		param string
		kind  reflect.Kind
		msg   string
	}{
		{ident, "", 0, `"category_id" is not a valid identifier`},
		{mx, "20", reflect.String, `"category_id" length must be less than or equal to 20 characters`},
		{mx, "1", reflect.String, `"category_id" length must be less than or equal to 1 character`},
		{mn, "1", reflect.String, `"category_id" length must be greater than or equal to 1 character`},
		{mx, "100", reflect.Int, `"category_id" must be less than or equal to 100`},
		{mn, "0", reflect.Int64, `"category_id" must be greater than or equal to 0`},
		{mx, "5", reflect.Slice, `"category_id" length must be less than or equal to 5 elements`},
		{mn, "1", reflect.Slice, `"category_id" length must be greater than or equal to 1 element`},
		{oneof, "json markdown", 0, `"category_id" must be one of the following: "json", "markdown"`},
		{required, "", 0, `"category_id" is required`},
		{"foo", "", 0, `"category_id" failed the "foo" check`},
	}

	for _, tt := range cases {
		err := mockFieldError{tag: tt.tag, field: "category_id", param: tt.param, kind: tt.kind}
		assert.Equal(t, tt.msg, formatValidationError(&err))
	}
}

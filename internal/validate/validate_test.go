package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var raw any
	require.NoError(t, dec.Decode(&raw))
	return raw
}

func asErrors(t *testing.T, err error) *Errors {
	t.Helper()
	var verr *Errors
	require.ErrorAs(t, err, &verr)
	return verr
}

var amountSchema = New(
	Int("amount").Required("Please enter a valid amount").
		Min(100, "Minimum donation is $1").
		Max(10_000_000, "For donations over $100,000, please contact us"),
	Enum("donationType", "one-time", "monthly").Default("one-time"),
)

func TestValidate_RequiredAndFormat(t *testing.T) {
	schema := New(
		String("name").Required("Name is required").MaxLen(100, "Name must be less than 100 characters"),
		Email("email").Required(""),
	)

	_, err := schema.Validate(decode(t, `{"name":"A"}`))
	verr := asErrors(t, err)
	assert.Equal(t, map[string]string{"email": "Email is required"}, verr.Fields())

	_, err = schema.Validate(decode(t, `{"name":"   ","email":"nope"}`))
	verr = asErrors(t, err)
	assert.Equal(t, "Name is required", verr.First())
	msg, _ := verr.Get("email")
	assert.Equal(t, "Please enter a valid email address", msg)
}

func TestValidate_NormalizesValues(t *testing.T) {
	schema := New(
		String("name").Required(""),
		Email("email").Required(""),
		Phone("phone"),
		List("roles"),
	)

	vals, err := schema.Validate(decode(t, `{"name":"  Ana  ","email":" Ana@Example.ORG ","phone":"(512) 555-0100","roles":[" events ","", "transport"]}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", vals.String("name"))
	assert.Equal(t, "ana@example.org", vals.String("email"))
	assert.Equal(t, "5125550100", vals.String("phone"))
	assert.Equal(t, []string{"events", "transport"}, vals.Strings("roles"))
}

func TestValidate_IntegerBounds(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"amount":99}`, "Minimum donation is $1"},
		{`{"amount":10000001}`, "For donations over $100,000, please contact us"},
		{`{"amount":250.5}`, "Please enter a number"},
		{`{"amount":"2500"}`, "Please enter a number"},
		{`{}`, "Please enter a valid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, err := amountSchema.Validate(decode(t, tt.body))
			assert.Equal(t, tt.want, asErrors(t, err).First())
		})
	}

	vals, err := amountSchema.Validate(decode(t, `{"amount":100}`))
	require.NoError(t, err)
	assert.EqualValues(t, 100, vals.Int("amount"))
	assert.Equal(t, "one-time", vals.String("donationType"))

	_, err = amountSchema.Validate(decode(t, `{"amount":10000000}`))
	assert.NoError(t, err)
}

func TestValidate_EnumRejectsUnknown(t *testing.T) {
	_, err := amountSchema.Validate(decode(t, `{"amount":500,"donationType":"yearly"}`))
	msg, ok := asErrors(t, err).Get("donationType")
	require.True(t, ok)
	assert.Equal(t, "Invalid option", msg)
}

func TestValidate_OptionalStillConstrained(t *testing.T) {
	schema := New(String("notes").MaxLen(5, "Too long"), Number("latitude"))

	vals, err := schema.Validate(decode(t, `{"notes":""}`))
	require.NoError(t, err)
	assert.False(t, vals.Has("notes"))
	assert.Nil(t, vals.FloatPtr("latitude"))

	_, err = schema.Validate(decode(t, `{"notes":"far too long"}`))
	assert.Equal(t, "Too long", asErrors(t, err).First())

	vals, err = schema.Validate(decode(t, `{"latitude":412.5}`))
	require.NoError(t, err)
	assert.Equal(t, 412.5, *vals.FloatPtr("latitude"))
}

func TestValidate_NestedPaths(t *testing.T) {
	schema := New(Object("address",
		String("street").Required("Street is required"),
		String("zip").MinLen(5, "ZIP code is required"),
	))

	_, err := schema.Validate(decode(t, `{"address":{"zip":"787"}}`))
	verr := asErrors(t, err)
	assert.Equal(t, map[string]string{
		"address.street": "Street is required",
		"address.zip":    "ZIP code is required",
	}, verr.Fields())

	vals, err := schema.Validate(decode(t, `{"address":{"street":"1 Main","zip":"78701"}}`))
	require.NoError(t, err)
	assert.Equal(t, "78701", vals.Object("address").String("zip"))
}

func TestValidate_FirstErrorFollowsDeclarationOrder(t *testing.T) {
	schema := New(
		String("b").Required("b missing"),
		String("a").Required("a missing"),
	)
	_, err := schema.Validate(decode(t, `{}`))
	assert.Equal(t, "b missing", asErrors(t, err).First())
}

func TestValidate_NonObjectBody(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `42`, `null`} {
		_, err := amountSchema.Validate(decode(t, body))
		assert.Equal(t, map[string]string{RootPath: "Invalid request body"}, asErrors(t, err).Fields(), body)
	}
}

func TestValidate_ListMinItems(t *testing.T) {
	schema := New(List("roles").Required("Please select at least one role").MinItems(1, "Please select at least one role"))

	_, err := schema.Validate(decode(t, `{"roles":["  "]}`))
	assert.Equal(t, "Please select at least one role", asErrors(t, err).First())

	_, err = schema.Validate(decode(t, `{"roles":[1]}`))
	assert.Equal(t, "Expected a list", asErrors(t, err).First())
}

package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping() ShippingForm {
	return ShippingForm{
		FirstName:  "Abebe",
		LastName:   "Bikila",
		Email:      "abebe@example.com",
		Phone:      "+251911223344",
		Address:    "Bole Road 12",
		City:       "Addis Ababa",
		Region:     "Addis Ababa",
		PostalCode: "1000",
	}
}

func TestShippingFormValidatePasses(t *testing.T) {
	assert.True(t, validShipping().Validate().Valid())
}

func TestShippingFormAllFieldsRequired(t *testing.T) {
	errs := ShippingForm{}.Validate()
	require.False(t, errs.Valid())

	for _, field := range []string{"firstName", "lastName", "email", "phone", "address", "city", "region", "postalCode"} {
		assert.Equal(t, msgRequired, errs[field], field)
	}
}

func TestShippingFormEmailShape(t *testing.T) {
	f := validShipping()
	f.Email = "not-an-email"
	errs := f.Validate()
	assert.Equal(t, msgInvalidEmail, errs["email"])
}

func TestShippingFormPhoneShape(t *testing.T) {
	f := validShipping()
	f.Phone = "1234"
	errs := f.Validate()
	assert.Equal(t, msgInvalidPhone, errs["phone"])
}

func TestShippingFormRejectsUnknownRegion(t *testing.T) {
	f := validShipping()
	f.Region = "Atlantis"
	errs := f.Validate()
	assert.False(t, errs.Valid())
	assert.Contains(t, errs, "region")
}

func TestShippingFormValidateField(t *testing.T) {
	f := validShipping()

	msg, ok := f.ValidateField("email", "bad")
	require.True(t, ok)
	assert.Equal(t, msgInvalidEmail, msg)

	msg, ok = f.ValidateField("email", "good@example.com")
	require.True(t, ok)
	assert.Empty(t, msg)

	msg, ok = f.ValidateField("city", "")
	require.True(t, ok)
	assert.Equal(t, msgRequired, msg)

	_, ok = f.ValidateField("cardNumber", "4242424242424242")
	assert.False(t, ok)
}

package checkout

// ShippingForm accumulates the shipping stage fields.
type ShippingForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
}

// Regions selectable in the shipping form.
var Regions = []string{
	"Addis Ababa",
	"Afar",
	"Amhara",
	"Benishangul-Gumuz",
	"Dire Dawa",
	"Gambela",
	"Harari",
	"Oromia",
	"Sidama",
	"Somali",
	"South West Ethiopia",
	"Southern Nations, Nationalities, and Peoples",
	"Tigray",
}

func knownRegion(r string) bool {
	for _, known := range Regions {
		if known == r {
			return true
		}
	}
	return false
}

// Validate checks every required shipping field.
func (f ShippingForm) Validate() FieldErrors {
	errs := FieldErrors{}
	checkRequired := func(field, value string) {
		if !required(value) {
			errs.set(field, msgRequired)
		}
	}

	checkRequired("firstName", f.FirstName)
	checkRequired("lastName", f.LastName)
	checkRequired("address", f.Address)
	checkRequired("city", f.City)
	checkRequired("postalCode", f.PostalCode)

	if !required(f.Email) {
		errs.set("email", msgRequired)
	} else if !ValidEmail(f.Email) {
		errs.set("email", msgInvalidEmail)
	}

	if !required(f.Phone) {
		errs.set("phone", msgRequired)
	} else if !ValidPhone(f.Phone) {
		errs.set("phone", msgInvalidPhone)
	}

	if !required(f.Region) || !knownRegion(f.Region) {
		errs.set("region", msgRequired)
	}

	return errs
}

// ValidateField validates a single shipping field on blur.
func (f ShippingForm) ValidateField(field, value string) (string, bool) {
	switch field {
	case "email":
		if !ValidEmail(value) {
			return msgInvalidEmail, true
		}
	case "phone":
		if !ValidPhone(value) {
			return msgInvalidPhone, true
		}
	case "firstName", "lastName", "address", "city", "region", "postalCode":
		if !required(value) {
			return msgRequired, true
		}
	default:
		return "", false
	}
	return "", true
}

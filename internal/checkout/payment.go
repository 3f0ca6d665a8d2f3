package checkout

import (
	"fmt"

	"github.com/yab-g4u/Ablack/internal/domain"
)

// PaymentForm accumulates the payment stage fields. Which fields matter
// depends on the selected method.
type PaymentForm struct {
	Method      string `json:"method"`
	PhoneNumber string `json:"phoneNumber"`
	CardNumber  string `json:"cardNumber"`
	CardName    string `json:"cardName"`
	ExpiryDate  string `json:"expiryDate"`
	CVV         string `json:"cvv"`
}

// PaymentMethod is the closed set of payment variants. Each variant owns
// its validation and display strategy; selection is exhaustive over the
// four tags rather than ad-hoc string comparison.
type PaymentMethod interface {
	Tag() string
	Label() string
	Validate(form PaymentForm) FieldErrors
	// ValidateField validates a single field on blur; ok=false means the
	// field is not one this variant cares about.
	ValidateField(field, value string) (msg string, ok bool)
}

type mobileMoneyMethod struct {
	tag   string
	label string
}

func (m mobileMoneyMethod) Tag() string   { return m.tag }
func (m mobileMoneyMethod) Label() string { return m.label }

func (m mobileMoneyMethod) Validate(form PaymentForm) FieldErrors {
	errs := FieldErrors{}
	if !required(form.PhoneNumber) {
		errs.set("phoneNumber", msgRequired)
	} else if !ValidPhone(form.PhoneNumber) {
		errs.set("phoneNumber", msgInvalidPhone)
	}
	return errs
}

func (m mobileMoneyMethod) ValidateField(field, value string) (string, bool) {
	if field != "phoneNumber" {
		return "", false
	}
	if !ValidPhone(value) {
		return msgInvalidPhone, true
	}
	return "", true
}

type cardMethod struct{}

func (cardMethod) Tag() string   { return domain.PaymentMethodCard }
func (cardMethod) Label() string { return "Credit/Debit Card" }

func (cardMethod) Validate(form PaymentForm) FieldErrors {
	errs := FieldErrors{}
	if !ValidCardNumber(form.CardNumber) {
		errs.set("cardNumber", msgInvalidCard)
	}
	if !required(form.CardName) {
		errs.set("cardName", msgRequired)
	}
	if !ValidExpiryDate(form.ExpiryDate) {
		errs.set("expiryDate", msgInvalidExp)
	}
	if !ValidCVV(form.CVV) {
		errs.set("cvv", msgInvalidCVV)
	}
	return errs
}

func (cardMethod) ValidateField(field, value string) (string, bool) {
	switch field {
	case "cardNumber":
		if !ValidCardNumber(value) {
			return msgInvalidCard, true
		}
	case "cardName":
		if !required(value) {
			return msgRequired, true
		}
	case "expiryDate":
		if !ValidExpiryDate(value) {
			return msgInvalidExp, true
		}
	case "cvv":
		if !ValidCVV(value) {
			return msgInvalidCVV, true
		}
	default:
		return "", false
	}
	return "", true
}

// MethodFor resolves a method tag to its variant. The switch is
// exhaustive over domain.PaymentMethodTypes.
func MethodFor(tag string) (PaymentMethod, error) {
	switch tag {
	case domain.PaymentMethodTelebirr:
		return mobileMoneyMethod{tag: domain.PaymentMethodTelebirr, label: "TeleBirr Mobile Money"}, nil
	case domain.PaymentMethodCBE:
		return mobileMoneyMethod{tag: domain.PaymentMethodCBE, label: "CBE Birr"}, nil
	case domain.PaymentMethodAmole:
		return mobileMoneyMethod{tag: domain.PaymentMethodAmole, label: "Amole"}, nil
	case domain.PaymentMethodCard:
		return cardMethod{}, nil
	default:
		return nil, fmt.Errorf("unknown payment method %q", tag)
	}
}

// Validate checks the payment stage: the method must resolve, and the
// variant decides which fields are required.
func (f PaymentForm) Validate() FieldErrors {
	method, err := MethodFor(f.Method)
	if err != nil {
		return FieldErrors{"method": "Please select a payment method"}
	}
	return method.Validate(f)
}

// Details shapes the payment fields for order persistence. Secrets (full
// card number, CVV) never leave the wizard; only a masked tail is kept.
func (f PaymentForm) Details() domain.JSONB {
	method, err := MethodFor(f.Method)
	if err != nil {
		return domain.JSONB{}
	}
	details := domain.JSONB{"method": method.Tag(), "label": method.Label()}
	switch method.(type) {
	case cardMethod:
		if len(f.CardNumber) == 16 {
			details["cardLast4"] = f.CardNumber[12:]
		}
		details["cardName"] = f.CardName
	default:
		details["phoneNumber"] = f.PhoneNumber
	}
	return details
}

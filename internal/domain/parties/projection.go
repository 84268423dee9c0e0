package parties

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchField    = errors.New("no such field")
	ErrProfileMissing = errors.New("no profile for customer type")
)

// CustomerField resolves a named field against the base record first
// and the active profile second. It is the explicit replacement for
// attribute fall-through: a miss on both is ErrNoSuchField, never a
// silent empty value, and asking a regular customer for company_name
// is a miss rather than a forward to the wrong variant.
func CustomerField(c Customer, regular *RegularCustomerProfile, business *BusinessCustomerProfile, field string) (string, error) {
	switch field {
	case "email":
		return c.Email, nil
	case "phone":
		return c.Phone, nil
	case "type":
		return c.Type, nil
	}
	switch c.Type {
	case CustomerTypeRegular:
		if regular == nil {
			return "", fmt.Errorf("%w: %s", ErrProfileMissing, c.Type)
		}
		switch field {
		case "first_name":
			return regular.FirstName, nil
		case "last_name":
			return regular.LastName, nil
		case "apartment_number":
			return regular.ApartmentNumber, nil
		}
	case CustomerTypeBusiness:
		if business == nil {
			return "", fmt.Errorf("%w: %s", ErrProfileMissing, c.Type)
		}
		switch field {
		case "company_name":
			return business.CompanyName, nil
		case "company_id":
			return business.CompanyID, nil
		}
	default:
		return "", fmt.Errorf("%w: type %q", ErrProfileMissing, c.Type)
	}
	return "", fmt.Errorf("%w: %q on %s customer", ErrNoSuchField, field, c.Type)
}

package domain

import "strings"

// ValidationMessages maps validator tags to the messages reported for them.
// Format tags carry the stable, field-specific wording callers match on.
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email",
	"phone":    "Must be a valid phone number",
	"color":    "Must be a valid hex color",
	"username": "Username can only contain alphanumeric characters",
	"company":  "Please select a valid company",
	"zip":      "Invalid zip",
	"state":    "Invalid state",
	"country":  "Invalid country code",
	"settings": "Invalid settings object",
	"decimal":  "Must be a Decimal",
	"finite":   "Must be a finite Decimal",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"len":      "Must be exactly the specified length",
	"gte":      "Must be greater than or equal to minimum value",
	"gtefield": "Must not be before the field it is compared with",
	"type":     "Invalid type",
	"unknown":  "Unknown field",
}

// fieldValidationMessages overrides ValidationMessages for a specific json
// field name and tag.
var fieldValidationMessages = map[[2]string]string{
	{"price", "decimal"}: "Field 'price' must be a Decimal. Location: ['Models', 'Job']",
}

// enumValues lists the closed value sets by validator tag
var enumValues = map[string][]string{
	"jobtype":        stringsOf(JobTypeValues()),
	"jobstatus":      stringsOf(JobStatusValues()),
	"clientstatus":   stringsOf(ClientStatusValues()),
	"vendorstatus":   stringsOf(VendorStatusValues()),
	"emailtype":      stringsOf(EmailTypeValues()),
	"phonetype":      stringsOf(PhoneTypeValues()),
	"currency":       stringsOf(CurrencyValues()),
	"department":     stringsOf(DepartmentValues()),
	"paymethod":      stringsOf(PayMethodValues()),
	"emaildirection": stringsOf(EmailDirectionValues()),
	"userroles":      stringsOf(UserRolesValues()),
	"theme":          stringsOf(ThemeValues()),
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// EnumTags returns the validator tag of every enumeration with its values
func EnumTags() map[string][]string {
	return enumValues
}

// GetValidationMessage returns the message for a failed tag on the named
// json field.
func GetValidationMessage(field, tag string) string {
	if msg, ok := fieldValidationMessages[[2]string{field, tag}]; ok {
		return msg
	}
	if values, ok := enumValues[tag]; ok {
		return "Invalid enum value. Expected " + strings.Join(values, " | ")
	}
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

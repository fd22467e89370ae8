package domain

// JobType represents the kind of work a job describes
type JobType string

const (
	JobTypeJob      JobType = "JOB"
	JobTypeRevision JobType = "REVISION"
	JobTypeQuote    JobType = "QUOTE"
	JobTypeCredit   JobType = "CREDIT"
)

// IsValid checks if the JobType is a valid enum value
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeJob, JobTypeRevision, JobTypeQuote, JobTypeCredit:
		return true
	}
	return false
}

// JobTypeValues returns every JobType in declaration order
func JobTypeValues() []JobType {
	return []JobType{JobTypeJob, JobTypeRevision, JobTypeQuote, JobTypeCredit}
}

// JobStatus represents the progress of a job at its vendor
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRush      JobStatus = "RUSH"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// IsValid checks if the JobStatus is a valid enum value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRush, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// JobStatusValues returns every JobStatus in declaration order
func JobStatusValues() []JobStatus {
	return []JobStatus{JobStatusPending, JobStatusRush, JobStatusCompleted, JobStatusCancelled}
}

// ClientStatus represents the lifecycle state of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
	ClientStatusRetired  ClientStatus = "RETIRED"
)

// IsValid checks if the ClientStatus is a valid enum value
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusRetired:
		return true
	}
	return false
}

// ClientStatusValues returns every ClientStatus in declaration order
func ClientStatusValues() []ClientStatus {
	return []ClientStatus{ClientStatusActive, ClientStatusInactive, ClientStatusRetired}
}

// VendorStatus represents whether a vendor currently accepts work
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// IsValid checks if the VendorStatus is a valid enum value
func (s VendorStatus) IsValid() bool {
	return s == VendorStatusActive || s == VendorStatusInactive
}

// VendorStatusValues returns every VendorStatus in declaration order
func VendorStatusValues() []VendorStatus {
	return []VendorStatus{VendorStatusActive, VendorStatusInactive}
}

// EmailType classifies a client email address
type EmailType string

const (
	EmailTypeJob     EmailType = "JOB"
	EmailTypeInvoice EmailType = "INVOICE"
)

// IsValid checks if the EmailType is a valid enum value
func (t EmailType) IsValid() bool {
	return t == EmailTypeJob || t == EmailTypeInvoice
}

// EmailTypeValues returns every EmailType in declaration order
func EmailTypeValues() []EmailType {
	return []EmailType{EmailTypeJob, EmailTypeInvoice}
}

// PhoneType classifies a client phone number
type PhoneType string

const (
	PhoneTypePrimary   PhoneType = "PRIMARY"
	PhoneTypeSecondary PhoneType = "SECONDARY"
)

// IsValid checks if the PhoneType is a valid enum value
func (t PhoneType) IsValid() bool {
	return t == PhoneTypePrimary || t == PhoneTypeSecondary
}

// PhoneTypeValues returns every PhoneType in declaration order
func PhoneTypeValues() []PhoneType {
	return []PhoneType{PhoneTypePrimary, PhoneTypeSecondary}
}

// Currency is the billing currency of a client
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
)

// IsValid checks if the Currency is a valid enum value
func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyCAD
}

// CurrencyValues returns every Currency in declaration order
func CurrencyValues() []Currency {
	return []Currency{CurrencyUSD, CurrencyCAD}
}

// Department is the kind of work a vendor performs
type Department string

const (
	DepartmentDigitizing Department = "DIGITIZING"
	DepartmentVector     Department = "VECTOR"
	DepartmentPatch      Department = "PATCH"
)

// IsValid checks if the Department is a valid enum value
func (d Department) IsValid() bool {
	switch d {
	case DepartmentDigitizing, DepartmentVector, DepartmentPatch:
		return true
	}
	return false
}

// DepartmentValues returns every Department in declaration order
func DepartmentValues() []Department {
	return []Department{DepartmentDigitizing, DepartmentVector, DepartmentPatch}
}

// PayMethod is how a client settles invoices
type PayMethod string

const (
	PayMethodCheck      PayMethod = "CHECK"
	PayMethodPaypal     PayMethod = "PAYPAL"
	PayMethodCreditCard PayMethod = "CREDIT_CARD"
	PayMethodOnline     PayMethod = "ONLINE"
	PayMethodUnknown    PayMethod = "UNKNOWN"
)

// IsValid checks if the PayMethod is a valid enum value
func (p PayMethod) IsValid() bool {
	switch p {
	case PayMethodCheck, PayMethodPaypal, PayMethodCreditCard, PayMethodOnline, PayMethodUnknown:
		return true
	}
	return false
}

// PayMethodValues returns every PayMethod in declaration order
func PayMethodValues() []PayMethod {
	return []PayMethod{PayMethodCheck, PayMethodPaypal, PayMethodCreditCard, PayMethodOnline, PayMethodUnknown}
}

// EmailDirection tells whether a mail message was sent back to the client
// or forwarded to the vendor
type EmailDirection string

const (
	EmailDirectionBackward EmailDirection = "BACKWARD"
	EmailDirectionForward  EmailDirection = "FORWARD"
)

// IsValid checks if the EmailDirection is a valid enum value
func (d EmailDirection) IsValid() bool {
	return d == EmailDirectionBackward || d == EmailDirectionForward
}

// EmailDirectionValues returns every EmailDirection in declaration order
func EmailDirectionValues() []EmailDirection {
	return []EmailDirection{EmailDirectionBackward, EmailDirectionForward}
}

// UserRoles is the role of an identity-provider user
type UserRoles string

const (
	UserRolesAdmin   UserRoles = "ADMIN"
	UserRolesUser    UserRoles = "USER"
	UserRolesManager UserRoles = "MANAGER"
)

// IsValid checks if the UserRoles is a valid enum value
func (r UserRoles) IsValid() bool {
	switch r {
	case UserRolesAdmin, UserRolesUser, UserRolesManager:
		return true
	}
	return false
}

// UserRolesValues returns every UserRoles in declaration order
func UserRolesValues() []UserRoles {
	return []UserRoles{UserRolesAdmin, UserRolesUser, UserRolesManager}
}

// Theme is the UI theme stored in a sales rep's color settings
type Theme string

const (
	ThemeWhite Theme = "white"
	ThemeG10   Theme = "g10"
	ThemeG80   Theme = "g80"
	ThemeG90   Theme = "g90"
	ThemeG100  Theme = "g100"
)

// IsValid checks if the Theme is a valid enum value
func (t Theme) IsValid() bool {
	switch t {
	case ThemeWhite, ThemeG10, ThemeG80, ThemeG90, ThemeG100:
		return true
	}
	return false
}

// ThemeValues returns every Theme in declaration order
func ThemeValues() []Theme {
	return []Theme{ThemeWhite, ThemeG10, ThemeG80, ThemeG90, ThemeG100}
}

package domain

// Relation views embed the shapes of directly related entities. They are
// never persisted: records reference each other by id and a Graph resolves
// the views on demand (see graph.go), so cyclic entity pairs such as
// Job <-> PurchaseOrder or Client <-> SalesRep never own one another.

type CompanyRelations struct {
	SalesReps   []SalesRepWithRelations              `json:"salesReps,omitempty" validate:"omitempty,dive"`
	Clients     []ClientWithRelations                `json:"clients,omitempty" validate:"omitempty,dive"`
	Assignments []ClientSalesRepCompanyWithRelations `json:"clientSalesRepCompanies,omitempty" validate:"omitempty,dive"`
}

type CompanyWithRelations struct {
	Company
	CompanyRelations
}

type CompanyOptionalDefaultsWithRelations struct {
	CompanyOptionalDefaults
	CompanyRelations
}

type SalesRepRelations struct {
	Company       *CompanyWithRelations                `json:"company,omitempty"`
	User          *UserWithRelations                   `json:"user,omitempty"`
	Clients       []ClientWithRelations                `json:"clients,omitempty" validate:"omitempty,dive"`
	Assignments   []ClientSalesRepCompanyWithRelations `json:"clientSalesRepCompanies,omitempty" validate:"omitempty,dive"`
	ColorSettings *ColorSettingsWithRelations          `json:"colorSettings,omitempty"`
}

type SalesRepWithRelations struct {
	SalesRep
	SalesRepRelations
}

type SalesRepOptionalDefaultsWithRelations struct {
	SalesRepOptionalDefaults
	SalesRepRelations
}

type ClientRelations struct {
	Company        *CompanyWithRelations                `json:"company,omitempty"`
	SalesRep       *SalesRepWithRelations               `json:"salesRep,omitempty"`
	Address        *ClientAddressWithRelations          `json:"address,omitempty"`
	Emails         []ClientEmailWithRelations           `json:"emails,omitempty" validate:"omitempty,dive"`
	Phones         []ClientPhoneWithRelations           `json:"phones,omitempty" validate:"omitempty,dive"`
	PurchaseOrders []PurchaseOrderWithRelations         `json:"purchaseOrders,omitempty" validate:"omitempty,dive"`
	Assignments    []ClientSalesRepCompanyWithRelations `json:"clientSalesRepCompanies,omitempty" validate:"omitempty,dive"`
}

type ClientWithRelations struct {
	Client
	ClientRelations
}

type ClientOptionalDefaultsWithRelations struct {
	ClientOptionalDefaults
	ClientRelations
}

type ClientSalesRepCompanyRelations struct {
	Client   *ClientWithRelations   `json:"client,omitempty"`
	SalesRep *SalesRepWithRelations `json:"salesRep,omitempty"`
	Company  *CompanyWithRelations  `json:"company,omitempty"`
}

type ClientSalesRepCompanyWithRelations struct {
	ClientSalesRepCompany
	ClientSalesRepCompanyRelations
}

type ClientSalesRepCompanyOptionalDefaultsWithRelations struct {
	ClientSalesRepCompanyOptionalDefaults
	ClientSalesRepCompanyRelations
}

type PurchaseOrderRelations struct {
	Client     *ClientWithRelations `json:"client,omitempty"`
	Jobs       []JobWithRelations   `json:"jobs,omitempty" validate:"omitempty,dive"`
	PrimaryJob *JobWithRelations    `json:"primaryJob,omitempty"`
}

type PurchaseOrderWithRelations struct {
	PurchaseOrder
	PurchaseOrderRelations
}

type PurchaseOrderOptionalDefaultsWithRelations struct {
	PurchaseOrderOptionalDefaults
	PurchaseOrderRelations
}

type JobRelations struct {
	Vendor        *VendorWithRelations        `json:"vendor,omitempty"`
	PurchaseOrder *PurchaseOrderWithRelations `json:"purchaseOrder,omitempty"`
	GmailMsgs     []GmailMsgWithRelations     `json:"gmailMsgs,omitempty" validate:"omitempty,dive"`
}

type JobWithRelations struct {
	Job
	JobRelations
}

type JobOptionalDefaultsWithRelations struct {
	JobOptionalDefaults
	JobRelations
}

type VendorRelations struct {
	Jobs []JobWithRelations `json:"jobs,omitempty" validate:"omitempty,dive"`
}

type VendorWithRelations struct {
	Vendor
	VendorRelations
}

type VendorOptionalDefaultsWithRelations struct {
	VendorOptionalDefaults
	VendorRelations
}

type GmailMsgRelations struct {
	Job *JobWithRelations `json:"job,omitempty"`
}

type GmailMsgWithRelations struct {
	GmailMsg
	GmailMsgRelations
}

type GmailMsgOptionalDefaultsWithRelations struct {
	GmailMsgOptionalDefaults
	GmailMsgRelations
}

type ClientAddressRelations struct {
	Client *ClientWithRelations `json:"client,omitempty"`
}

type ClientAddressWithRelations struct {
	ClientAddress
	ClientAddressRelations
}

type ClientAddressOptionalDefaultsWithRelations struct {
	ClientAddressOptionalDefaults
	ClientAddressRelations
}

type ClientEmailRelations struct {
	Client *ClientWithRelations `json:"client,omitempty"`
}

type ClientEmailWithRelations struct {
	ClientEmail
	ClientEmailRelations
}

type ClientEmailOptionalDefaultsWithRelations struct {
	ClientEmailOptionalDefaults
	ClientEmailRelations
}

type ClientPhoneRelations struct {
	Client *ClientWithRelations `json:"client,omitempty"`
}

type ClientPhoneWithRelations struct {
	ClientPhone
	ClientPhoneRelations
}

type ClientPhoneOptionalDefaultsWithRelations struct {
	ClientPhoneOptionalDefaults
	ClientPhoneRelations
}

type ColorSettingsRelations struct {
	SalesRep *SalesRepWithRelations `json:"salesRep,omitempty"`
}

type ColorSettingsWithRelations struct {
	ColorSettings
	ColorSettingsRelations
}

type ColorSettingsOptionalDefaultsWithRelations struct {
	ColorSettingsOptionalDefaults
	ColorSettingsRelations
}

type UserSettingsRelations struct {
	User *UserWithRelations `json:"user,omitempty"`
}

type UserSettingsWithRelations struct {
	UserSettings
	UserSettingsRelations
}

type UserSettingsOptionalDefaultsWithRelations struct {
	UserSettingsOptionalDefaults
	UserSettingsRelations
}

type UserRelations struct {
	SalesRep *SalesRepWithRelations     `json:"salesRep,omitempty"`
	Settings *UserSettingsWithRelations `json:"settings,omitempty"`
	Sessions []SessionWithRelations     `json:"sessions,omitempty" validate:"omitempty,dive"`
	Keys     []KeyWithRelations         `json:"keys,omitempty" validate:"omitempty,dive"`
}

type UserWithRelations struct {
	User
	UserRelations
}

type UserOptionalDefaultsWithRelations struct {
	UserOptionalDefaults
	UserRelations
}

type SessionRelations struct {
	User *UserWithRelations `json:"user,omitempty"`
}

type SessionWithRelations struct {
	Session
	SessionRelations
}

type SessionOptionalDefaultsWithRelations = SessionWithRelations

type KeyRelations struct {
	User *UserWithRelations `json:"user,omitempty"`
}

type KeyWithRelations struct {
	Key
	KeyRelations
}

type KeyOptionalDefaultsWithRelations = KeyWithRelations

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Optional-defaults variants carry the same fields as their base shape, but
// every server-assigned field is a pointer that may be omitted on input.
// WithDefaults fills the omitted fields and returns the base shape. Database
// generated identities (auto-increment ids) are left at zero for the
// persistence layer to assign.

// DefaultCountry is the country code assumed when none is given
const DefaultCountry = "US"

// DefaultUserSettings is the settings document of a user who has saved none
const DefaultUserSettings = "{}"

func orDefault[T any](v *T, def T) T {
	if v != nil {
		return *v
	}
	return def
}

func orNow(v *time.Time, now time.Time) time.Time {
	if v != nil {
		return *v
	}
	return now
}

func orNewID(v *string) string {
	if v != nil && *v != "" {
		return *v
	}
	return uuid.NewString()
}

type CompanyOptionalDefaults struct {
	ID        *int       `json:"id" validate:"omitempty,gte=1"`
	Name      string     `json:"name" validate:"required,max=200"`
	Address1  *string    `json:"address1" validate:"omitempty,max=200"`
	Address2  *string    `json:"address2" validate:"omitempty,max=200"`
	City      *string    `json:"city" validate:"omitempty,max=100"`
	State     *string    `json:"state" validate:"omitempty,state"`
	Zip       *string    `json:"zip" validate:"omitempty,zip"`
	Country   *string    `json:"country" validate:"omitempty,country"`
	Phone     *string    `json:"phone" validate:"omitempty,phone"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func (c CompanyOptionalDefaults) WithDefaults(now time.Time) Company {
	return Company{
		ID:        orDefault(c.ID, 0),
		Name:      c.Name,
		Address1:  c.Address1,
		Address2:  c.Address2,
		City:      c.City,
		State:     c.State,
		Zip:       c.Zip,
		Country:   orDefault(c.Country, DefaultCountry),
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: orNow(c.CreatedAt, now),
		UpdatedAt: orNow(c.UpdatedAt, now),
	}
}

type SalesRepOptionalDefaults struct {
	ID        *int       `json:"id" validate:"omitempty,gte=1"`
	Username  string     `json:"username" validate:"required,min=2,max=10,username"`
	Name      string     `json:"name" validate:"required,max=200"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     *string    `json:"phone" validate:"omitempty,phone"`
	CompanyID int        `json:"companyId" validate:"company"`
	UserID    string     `json:"userId" validate:"required"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func (s SalesRepOptionalDefaults) WithDefaults(now time.Time) SalesRep {
	return SalesRep{
		ID:        orDefault(s.ID, 0),
		Username:  s.Username,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		CompanyID: s.CompanyID,
		UserID:    s.UserID,
		CreatedAt: orNow(s.CreatedAt, now),
		UpdatedAt: orNow(s.UpdatedAt, now),
	}
}

type ClientOptionalDefaults struct {
	ID               *string       `json:"id" validate:"omitempty,max=36"`
	Name             string        `json:"name" validate:"required,max=200"`
	CompanyName      string        `json:"companyName" validate:"required,max=200"`
	PayMethod        *PayMethod    `json:"payMethod" validate:"omitempty,paymethod"`
	Currency         *Currency     `json:"currency" validate:"omitempty,currency"`
	Status           *ClientStatus `json:"status" validate:"omitempty,clientstatus"`
	CompanyID        int           `json:"companyId" validate:"company"`
	SalesRepUsername string        `json:"salesRepUsername" validate:"required,min=2,max=20,username"`
	Notes            *string       `json:"notes" validate:"omitempty,max=5000"`
	CreatedAt        *time.Time    `json:"createdAt"`
	UpdatedAt        *time.Time    `json:"updatedAt"`
}

func (c ClientOptionalDefaults) WithDefaults(now time.Time) Client {
	return Client{
		ID:               orNewID(c.ID),
		Name:             c.Name,
		CompanyName:      c.CompanyName,
		PayMethod:        orDefault(c.PayMethod, PayMethodUnknown),
		Currency:         orDefault(c.Currency, CurrencyUSD),
		Status:           orDefault(c.Status, ClientStatusActive),
		CompanyID:        c.CompanyID,
		SalesRepUsername: c.SalesRepUsername,
		Notes:            c.Notes,
		CreatedAt:        orNow(c.CreatedAt, now),
		UpdatedAt:        orNow(c.UpdatedAt, now),
	}
}

type ClientSalesRepCompanyOptionalDefaults struct {
	ClientID         string     `json:"clientId" validate:"required,max=36"`
	SalesRepUsername string     `json:"salesRepUsername" validate:"required,min=2,max=20,username"`
	CompanyID        int        `json:"companyId" validate:"company"`
	FromDate         *time.Time `json:"fromDate"`
	ToDate           *time.Time `json:"toDate"`
	IsActive         *bool      `json:"isActive"`
}

func (a ClientSalesRepCompanyOptionalDefaults) WithDefaults(now time.Time) ClientSalesRepCompany {
	return ClientSalesRepCompany{
		ClientID:         a.ClientID,
		SalesRepUsername: a.SalesRepUsername,
		CompanyID:        a.CompanyID,
		FromDate:         orNow(a.FromDate, now),
		ToDate:           a.ToDate,
		IsActive:         orDefault(a.IsActive, true),
	}
}

type PurchaseOrderOptionalDefaults struct {
	ID           *int       `json:"id" validate:"omitempty,gte=1"`
	ClientID     string     `json:"clientId" validate:"required,max=36"`
	PrimaryJobID *string    `json:"primaryJobId" validate:"omitempty,max=36"`
	PONumber     *string    `json:"poNumber" validate:"omitempty,max=50"`
	Notes        *string    `json:"notes" validate:"omitempty,max=5000"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (p PurchaseOrderOptionalDefaults) WithDefaults(now time.Time) PurchaseOrder {
	return PurchaseOrder{
		ID:           orDefault(p.ID, 0),
		ClientID:     p.ClientID,
		PrimaryJobID: p.PrimaryJobID,
		PONumber:     p.PONumber,
		Notes:        p.Notes,
		CreatedAt:    orNow(p.CreatedAt, now),
		UpdatedAt:    orNow(p.UpdatedAt, now),
	}
}

// JobOptionalDefaults leaves PurchaseOrderID optional so that jobs can be
// submitted nested under the purchase order that is being created with them.
type JobOptionalDefaults struct {
	ID              *string    `json:"id" validate:"omitempty,max=36"`
	Name            string     `json:"name" validate:"required,max=200"`
	Price           Decimal    `json:"price" validate:"decimal"`
	Type            *JobType   `json:"type" validate:"omitempty,jobtype"`
	Status          *JobStatus `json:"status" validate:"omitempty,jobstatus"`
	VendorID        int        `json:"vendorId" validate:"gte=1"`
	PurchaseOrderID *int       `json:"purchaseOrderId" validate:"omitempty,gte=1"`
	DueDate         *time.Time `json:"dueDate"`
	Notes           *string    `json:"notes" validate:"omitempty,max=5000"`
	CreatedAt       *time.Time `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt"`
}

func (j JobOptionalDefaults) WithDefaults(now time.Time) Job {
	return Job{
		ID:              orNewID(j.ID),
		Name:            j.Name,
		Price:           j.Price,
		Type:            orDefault(j.Type, JobTypeJob),
		Status:          orDefault(j.Status, JobStatusPending),
		VendorID:        j.VendorID,
		PurchaseOrderID: orDefault(j.PurchaseOrderID, 0),
		DueDate:         j.DueDate,
		Notes:           j.Notes,
		CreatedAt:       orNow(j.CreatedAt, now),
		UpdatedAt:       orNow(j.UpdatedAt, now),
	}
}

type VendorOptionalDefaults struct {
	ID         *int          `json:"id" validate:"omitempty,gte=1"`
	Name       string        `json:"name" validate:"required,max=200"`
	Email      string        `json:"email" validate:"required,email"`
	Department Department    `json:"department" validate:"department"`
	Status     *VendorStatus `json:"status" validate:"omitempty,vendorstatus"`
	CreatedAt  *time.Time    `json:"createdAt"`
	UpdatedAt  *time.Time    `json:"updatedAt"`
}

func (v VendorOptionalDefaults) WithDefaults(now time.Time) Vendor {
	return Vendor{
		ID:         orDefault(v.ID, 0),
		Name:       v.Name,
		Email:      v.Email,
		Department: v.Department,
		Status:     orDefault(v.Status, VendorStatusActive),
		CreatedAt:  orNow(v.CreatedAt, now),
		UpdatedAt:  orNow(v.UpdatedAt, now),
	}
}

type GmailMsgOptionalDefaults struct {
	ThreadID   string         `json:"threadId" validate:"required,max=100"`
	InboxMsgID string         `json:"inboxMsgId" validate:"required,max=100"`
	JobID      string         `json:"jobId" validate:"required,max=36"`
	Direction  EmailDirection `json:"direction" validate:"emaildirection"`
	Subject    *string        `json:"subject" validate:"omitempty,max=500"`
	SentAt     *time.Time     `json:"sentAt"`
}

func (g GmailMsgOptionalDefaults) WithDefaults(now time.Time) GmailMsg {
	return GmailMsg{
		ThreadID:   g.ThreadID,
		InboxMsgID: g.InboxMsgID,
		JobID:      g.JobID,
		Direction:  g.Direction,
		Subject:    g.Subject,
		SentAt:     orNow(g.SentAt, now),
	}
}

type ClientAddressOptionalDefaults struct {
	ClientID string  `json:"clientId" validate:"required,max=36"`
	Address1 string  `json:"address1" validate:"required,max=200"`
	Address2 *string `json:"address2" validate:"omitempty,max=200"`
	City     string  `json:"city" validate:"required,max=100"`
	State    string  `json:"state" validate:"state"`
	Zip      string  `json:"zip" validate:"zip"`
	Country  *string `json:"country" validate:"omitempty,country"`
}

func (a ClientAddressOptionalDefaults) WithDefaults(time.Time) ClientAddress {
	return ClientAddress{
		ClientID: a.ClientID,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  orDefault(a.Country, DefaultCountry),
	}
}

type ClientEmailOptionalDefaults struct {
	ID          *int       `json:"id" validate:"omitempty,gte=1"`
	ClientID    string     `json:"clientId" validate:"required,max=36"`
	Email       string     `json:"email" validate:"required,email"`
	Type        *EmailType `json:"type" validate:"omitempty,emailtype"`
	Description *string    `json:"description" validate:"omitempty,max=100"`
}

func (e ClientEmailOptionalDefaults) WithDefaults(time.Time) ClientEmail {
	return ClientEmail{
		ID:          orDefault(e.ID, 0),
		ClientID:    e.ClientID,
		Email:       e.Email,
		Type:        orDefault(e.Type, EmailTypeJob),
		Description: e.Description,
	}
}

type ClientPhoneOptionalDefaults struct {
	ID          *int       `json:"id" validate:"omitempty,gte=1"`
	ClientID    string     `json:"clientId" validate:"required,max=36"`
	Phone       string     `json:"phone" validate:"phone"`
	Type        *PhoneType `json:"type" validate:"omitempty,phonetype"`
	Description *string    `json:"description" validate:"omitempty,max=100"`
}

func (p ClientPhoneOptionalDefaults) WithDefaults(time.Time) ClientPhone {
	return ClientPhone{
		ID:          orDefault(p.ID, 0),
		ClientID:    p.ClientID,
		Phone:       p.Phone,
		Type:        orDefault(p.Type, PhoneTypePrimary),
		Description: p.Description,
	}
}

type ColorSettingsOptionalDefaults struct {
	Username       string `json:"username" validate:"required,len=2,username"`
	PrimaryColor   string `json:"primaryColor" validate:"color"`
	SecondaryColor string `json:"secondaryColor" validate:"color"`
	TertiaryColor  string `json:"tertiaryColor" validate:"color"`
	AccentColor    string `json:"accentColor" validate:"color"`
	Theme          *Theme `json:"theme" validate:"omitempty,theme"`
}

func (c ColorSettingsOptionalDefaults) WithDefaults(time.Time) ColorSettings {
	return ColorSettings{
		Username:       c.Username,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		TertiaryColor:  c.TertiaryColor,
		AccentColor:    c.AccentColor,
		Theme:          orDefault(c.Theme, ThemeWhite),
	}
}

type UserSettingsOptionalDefaults struct {
	Username string  `json:"username" validate:"required,min=2,max=20,username"`
	Settings *string `json:"settings" validate:"omitempty,settings"`
}

func (u UserSettingsOptionalDefaults) WithDefaults(time.Time) UserSettings {
	return UserSettings{
		Username: u.Username,
		Settings: orDefault(u.Settings, DefaultUserSettings),
	}
}

type UserOptionalDefaults struct {
	ID       *string    `json:"id" validate:"omitempty,max=36"`
	Username string     `json:"username" validate:"required,min=2,max=20,username"`
	Role     *UserRoles `json:"role" validate:"omitempty,userroles"`
}

func (u UserOptionalDefaults) WithDefaults(time.Time) User {
	return User{
		ID:       orNewID(u.ID),
		Username: u.Username,
		Role:     orDefault(u.Role, UserRolesUser),
	}
}

// Sessions and keys have no server-assigned fields; their optional-defaults
// variants exist so every entity exposes the same four shapes.
type SessionOptionalDefaults = Session

type KeyOptionalDefaults = Key

func (s Session) WithDefaults(time.Time) Session { return s }

func (k Key) WithDefaults(time.Time) Key { return k }

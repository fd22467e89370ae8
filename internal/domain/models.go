package domain

import (
	"time"
)

// Company is a selling company that employs sales reps and owns clients
type Company struct {
	ID        int       `gorm:"primaryKey" json:"id" validate:"gte=1"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Address1  *string   `gorm:"type:varchar(200);column:address1" json:"address1" validate:"omitempty,max=200"`
	Address2  *string   `gorm:"type:varchar(200);column:address2" json:"address2" validate:"omitempty,max=200"`
	City      *string   `gorm:"type:varchar(100)" json:"city" validate:"omitempty,max=100"`
	State     *string   `gorm:"type:varchar(2)" json:"state" validate:"omitempty,state"`
	Zip       *string   `gorm:"type:varchar(10)" json:"zip" validate:"omitempty,zip"`
	Country   string    `gorm:"type:varchar(3);not null" json:"country" validate:"country"`
	Phone     *string   `gorm:"type:varchar(18)" json:"phone" validate:"omitempty,phone"`
	Email     *string   `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (Company) TableName() string { return "companies" }

// SalesRep is an employee of a company who services clients.
// Username is the rep's stable handle and is what clients reference.
type SalesRep struct {
	ID        int       `gorm:"primaryKey" json:"id" validate:"gte=1"`
	Username  string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"username" validate:"required,min=2,max=10,username"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone     *string   `gorm:"type:varchar(18)" json:"phone" validate:"omitempty,phone"`
	CompanyID int       `gorm:"not null;index" json:"companyId" validate:"company"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId" validate:"required"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (SalesRep) TableName() string { return "sales_reps" }

// Client is a customer company. SalesRepUsername and CompanyID name the
// current assignment and must agree with the active ClientSalesRepCompany row.
type Client struct {
	ID               string       `gorm:"type:varchar(36);primaryKey" json:"id" validate:"required,max=36"`
	Name             string       `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	CompanyName      string       `gorm:"type:varchar(200);not null" json:"companyName" validate:"required,max=200"`
	PayMethod        PayMethod    `gorm:"type:varchar(20);not null" json:"payMethod" validate:"paymethod"`
	Currency         Currency     `gorm:"type:varchar(3);not null" json:"currency" validate:"currency"`
	Status           ClientStatus `gorm:"type:varchar(20);not null;index" json:"status" validate:"clientstatus"`
	CompanyID        int          `gorm:"not null;index" json:"companyId" validate:"company"`
	SalesRepUsername string       `gorm:"type:varchar(20);not null;index" json:"salesRepUsername" validate:"required,min=2,max=20,username"`
	Notes            *string      `gorm:"type:text" json:"notes" validate:"omitempty,max=5000"`
	CreatedAt        time.Time    `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (Client) TableName() string { return "clients" }

// ClientSalesRepCompany is one assignment period of a client to a sales rep
// under a company. A nil ToDate means the period is still open.
type ClientSalesRepCompany struct {
	ClientID         string     `gorm:"type:varchar(36);primaryKey" json:"clientId" validate:"required,max=36"`
	SalesRepUsername string     `gorm:"type:varchar(20);primaryKey" json:"salesRepUsername" validate:"required,min=2,max=20,username"`
	CompanyID        int        `gorm:"not null;index" json:"companyId" validate:"company"`
	FromDate         time.Time  `gorm:"not null" json:"fromDate" validate:"required"`
	ToDate           *time.Time `json:"toDate" validate:"omitempty,gtefield=FromDate"`
	IsActive         bool       `gorm:"not null;index" json:"isActive"`
}

func (ClientSalesRepCompany) TableName() string { return "client_sales_rep_companies" }

// IsCurrent reports whether the row is the open, active assignment
func (a *ClientSalesRepCompany) IsCurrent() bool {
	return a.IsActive && a.ToDate == nil
}

// PurchaseOrder groups the jobs a client ordered. PrimaryJobID, when set,
// must name one of the order's own jobs.
type PurchaseOrder struct {
	ID           int       `gorm:"primaryKey" json:"id" validate:"gte=1"`
	ClientID     string    `gorm:"type:varchar(36);not null;index" json:"clientId" validate:"required,max=36"`
	PrimaryJobID *string   `gorm:"type:varchar(36);index" json:"primaryJobId" validate:"omitempty,max=36"`
	PONumber     *string   `gorm:"type:varchar(50);column:po_number" json:"poNumber" validate:"omitempty,max=50"`
	Notes        *string   `gorm:"type:text" json:"notes" validate:"omitempty,max=5000"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// Job is a unit of work routed to a vendor under a purchase order
type Job struct {
	ID              string     `gorm:"type:varchar(36);primaryKey" json:"id" validate:"required,max=36"`
	Name            string     `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Price           Decimal    `gorm:"not null" json:"price" validate:"decimal"`
	Type            JobType    `gorm:"type:varchar(20);not null" json:"type" validate:"jobtype"`
	Status          JobStatus  `gorm:"type:varchar(20);not null;index" json:"status" validate:"jobstatus"`
	VendorID        int        `gorm:"not null;index" json:"vendorId" validate:"gte=1"`
	PurchaseOrderID int        `gorm:"not null;index" json:"purchaseOrderId" validate:"gte=1"`
	DueDate         *time.Time `json:"dueDate"`
	Notes           *string    `gorm:"type:text" json:"notes" validate:"omitempty,max=5000"`
	CreatedAt       time.Time  `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (Job) TableName() string { return "jobs" }

// Vendor is an outside shop that performs jobs for one department
type Vendor struct {
	ID         int          `gorm:"primaryKey" json:"id" validate:"gte=1"`
	Name       string       `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	Email      string       `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Department Department   `gorm:"type:varchar(20);not null" json:"department" validate:"department"`
	Status     VendorStatus `gorm:"type:varchar(20);not null" json:"status" validate:"vendorstatus"`
	CreatedAt  time.Time    `gorm:"not null" json:"createdAt" validate:"required"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updatedAt" validate:"required"`
}

func (Vendor) TableName() string { return "vendors" }

// GmailMsg links a mailbox message in a thread to the job it concerns
type GmailMsg struct {
	ThreadID   string         `gorm:"type:varchar(100);primaryKey" json:"threadId" validate:"required,max=100"`
	InboxMsgID string         `gorm:"type:varchar(100);primaryKey" json:"inboxMsgId" validate:"required,max=100"`
	JobID      string         `gorm:"type:varchar(36);primaryKey" json:"jobId" validate:"required,max=36"`
	Direction  EmailDirection `gorm:"type:varchar(20);not null" json:"direction" validate:"emaildirection"`
	Subject    *string        `gorm:"type:varchar(500)" json:"subject" validate:"omitempty,max=500"`
	SentAt     time.Time      `gorm:"not null" json:"sentAt" validate:"required"`
}

func (GmailMsg) TableName() string { return "gmail_msgs" }

// ClientAddress is the single mailing address of a client
type ClientAddress struct {
	ClientID string  `gorm:"type:varchar(36);primaryKey" json:"clientId" validate:"required,max=36"`
	Address1 string  `gorm:"type:varchar(200);not null;column:address1" json:"address1" validate:"required,max=200"`
	Address2 *string `gorm:"type:varchar(200);column:address2" json:"address2" validate:"omitempty,max=200"`
	City     string  `gorm:"type:varchar(100);not null" json:"city" validate:"required,max=100"`
	State    string  `gorm:"type:varchar(2);not null" json:"state" validate:"state"`
	Zip      string  `gorm:"type:varchar(10);not null" json:"zip" validate:"zip"`
	Country  string  `gorm:"type:varchar(3);not null" json:"country" validate:"country"`
}

func (ClientAddress) TableName() string { return "client_addresses" }

// ClientEmail is one of a client's email addresses
type ClientEmail struct {
	ID          int       `gorm:"primaryKey" json:"id" validate:"gte=1"`
	ClientID    string    `gorm:"type:varchar(36);not null;index" json:"clientId" validate:"required,max=36"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Type        EmailType `gorm:"type:varchar(20);not null" json:"type" validate:"emailtype"`
	Description *string   `gorm:"type:varchar(100)" json:"description" validate:"omitempty,max=100"`
}

func (ClientEmail) TableName() string { return "client_emails" }

// ClientPhone is one of a client's phone numbers
type ClientPhone struct {
	ID          int       `gorm:"primaryKey" json:"id" validate:"gte=1"`
	ClientID    string    `gorm:"type:varchar(36);not null;index" json:"clientId" validate:"required,max=36"`
	Phone       string    `gorm:"type:varchar(18);not null" json:"phone" validate:"phone"`
	Type        PhoneType `gorm:"type:varchar(20);not null" json:"type" validate:"phonetype"`
	Description *string   `gorm:"type:varchar(100)" json:"description" validate:"omitempty,max=100"`
}

func (ClientPhone) TableName() string { return "client_phones" }

// ColorSettings holds a sales rep's UI colors
type ColorSettings struct {
	Username       string `gorm:"type:varchar(2);primaryKey" json:"username" validate:"required,len=2,username"`
	PrimaryColor   string `gorm:"type:varchar(8);not null" json:"primaryColor" validate:"color"`
	SecondaryColor string `gorm:"type:varchar(8);not null" json:"secondaryColor" validate:"color"`
	TertiaryColor  string `gorm:"type:varchar(8);not null" json:"tertiaryColor" validate:"color"`
	AccentColor    string `gorm:"type:varchar(8);not null" json:"accentColor" validate:"color"`
	Theme          Theme  `gorm:"type:varchar(10);not null" json:"theme" validate:"theme"`
}

func (ColorSettings) TableName() string { return "color_settings" }

// UserSettings stores a user's preferences as an opaque JSON document
type UserSettings struct {
	Username string `gorm:"type:varchar(20);primaryKey" json:"username" validate:"required,min=2,max=20,username"`
	Settings string `gorm:"type:text;not null" json:"settings" validate:"settings"`
}

func (UserSettings) TableName() string { return "user_settings" }

// User is an identity-provider account. Only the columns needed for joins
// are modelled here.
type User struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id" validate:"required,max=36"`
	Username string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"username" validate:"required,min=2,max=20,username"`
	Role     UserRoles `gorm:"type:varchar(20);not null" json:"role" validate:"userroles"`
}

func (User) TableName() string { return "users" }

// Session is an identity-provider session. Expiry values are unix milliseconds.
type Session struct {
	ID            string `gorm:"type:varchar(128);primaryKey" json:"id" validate:"required,max=128"`
	UserID        string `gorm:"type:varchar(36);not null;index" json:"userId" validate:"required,max=36"`
	ActiveExpires int64  `gorm:"not null" json:"activeExpires" validate:"gte=0"`
	IdleExpires   int64  `gorm:"not null" json:"idleExpires" validate:"gte=0,gtefield=ActiveExpires"`
}

func (Session) TableName() string { return "sessions" }

// Key is an identity-provider credential key
type Key struct {
	ID             string  `gorm:"type:varchar(255);primaryKey" json:"id" validate:"required,max=255"`
	UserID         string  `gorm:"type:varchar(36);not null;index" json:"userId" validate:"required,max=36"`
	HashedPassword *string `gorm:"type:varchar(255)" json:"hashedPassword" validate:"omitempty,max=255"`
}

func (Key) TableName() string { return "keys" }

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stitchdesk/crm/internal/domain"
	"gorm.io/gorm"
)

// GraphLoader fills a domain.Graph from the database so relation views and
// integrity checks can run over persisted records
type GraphLoader struct {
	db          *gorm.DB
	companies   *CompanyRepository
	salesReps   *SalesRepRepository
	clients     *ClientRepository
	assignments *AssignmentRepository
	orders      *PurchaseOrderRepository
	jobs        *JobRepository
	vendors     *VendorRepository
	gmailMsgs   *GmailMsgRepository
	contacts    *ClientContactRepository
	settings    *SettingsRepository
	users       *UserRepository
}

// NewGraphLoader creates a new GraphLoader
func NewGraphLoader(db *gorm.DB) *GraphLoader {
	return &GraphLoader{
		db:          db,
		companies:   NewCompanyRepository(db),
		salesReps:   NewSalesRepRepository(db),
		clients:     NewClientRepository(db),
		assignments: NewAssignmentRepository(db),
		orders:      NewPurchaseOrderRepository(db),
		jobs:        NewJobRepository(db),
		vendors:     NewVendorRepository(db),
		gmailMsgs:   NewGmailMsgRepository(db),
		contacts:    NewClientContactRepository(db),
		settings:    NewSettingsRepository(db),
		users:       NewUserRepository(db),
	}
}

// LoadClient loads one client with everything reachable from it: its
// assignment history, the reps and companies involved, contacts, purchase
// orders, jobs, vendors and message links. Returns gorm.ErrRecordNotFound
// when the client does not exist.
func (l *GraphLoader) LoadClient(ctx context.Context, clientID string) (*domain.Graph, error) {
	g := domain.NewGraph()

	client, err := l.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	g.PutClient(*client)

	assignments, err := l.assignments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	companyIDs := map[int]struct{}{client.CompanyID: {}}
	usernames := map[string]struct{}{client.SalesRepUsername: {}}
	for _, a := range assignments {
		g.PutAssignment(a)
		companyIDs[a.CompanyID] = struct{}{}
		usernames[a.SalesRepUsername] = struct{}{}
	}

	for username := range usernames {
		if err := l.loadSalesRep(ctx, g, username); err != nil {
			return nil, err
		}
	}
	for id := range companyIDs {
		company, err := l.companies.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load company %d: %w", id, err)
		}
		g.PutCompany(*company)
	}

	if err := l.loadContacts(ctx, g, clientID); err != nil {
		return nil, err
	}

	orders, err := l.orders.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase orders: %w", err)
	}
	orderIDs := make([]int, 0, len(orders))
	for _, po := range orders {
		g.PutPurchaseOrder(po)
		orderIDs = append(orderIDs, po.ID)
	}
	if err := l.loadJobs(ctx, g, orderIDs); err != nil {
		return nil, err
	}

	return g, nil
}

func (l *GraphLoader) loadSalesRep(ctx context.Context, g *domain.Graph, username string) error {
	rep, err := l.salesReps.GetByUsername(ctx, nil, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load sales rep %s: %w", username, err)
	}
	g.PutSalesRep(*rep)

	if user, err := l.users.GetByID(ctx, rep.UserID); err == nil {
		g.PutUser(*user)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load user %s: %w", rep.UserID, err)
	}
	if colors, err := l.settings.GetColorSettings(ctx, username); err == nil {
		g.PutColorSettings(*colors)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load color settings: %w", err)
	}
	return nil
}

func (l *GraphLoader) loadContacts(ctx context.Context, g *domain.Graph, clientID string) error {
	address, err := l.contacts.GetAddress(ctx, clientID)
	switch {
	case err == nil:
		g.PutClientAddress(*address)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to load client address: %w", err)
	}

	emails, err := l.contacts.ListEmails(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load client emails: %w", err)
	}
	for _, e := range emails {
		g.PutClientEmail(e)
	}

	phones, err := l.contacts.ListPhones(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load client phones: %w", err)
	}
	for _, p := range phones {
		g.PutClientPhone(p)
	}
	return nil
}

func (l *GraphLoader) loadJobs(ctx context.Context, g *domain.Graph, orderIDs []int) error {
	jobs, err := l.jobs.ListByPurchaseOrders(ctx, orderIDs)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	jobIDs := make([]string, 0, len(jobs))
	vendorSet := make(map[int]struct{})
	for _, j := range jobs {
		g.PutJob(j)
		jobIDs = append(jobIDs, j.ID)
		vendorSet[j.VendorID] = struct{}{}
	}

	vendorIDs := make([]int, 0, len(vendorSet))
	for id := range vendorSet {
		vendorIDs = append(vendorIDs, id)
	}
	vendors, err := l.vendors.ListByIDs(ctx, vendorIDs)
	if err != nil {
		return fmt.Errorf("failed to load vendors: %w", err)
	}
	for _, v := range vendors {
		g.PutVendor(v)
	}

	msgs, err := l.gmailMsgs.ListByJobs(ctx, jobIDs)
	if err != nil {
		return fmt.Errorf("failed to load gmail messages: %w", err)
	}
	for _, m := range msgs {
		g.PutGmailMsg(m)
	}
	return nil
}

// LoadAll loads every record into one graph. Used by the integrity audit,
// which must also see rows whose parents are missing.
func (l *GraphLoader) LoadAll(ctx context.Context) (*domain.Graph, error) {
	g := domain.NewGraph()

	if err := loadInto(ctx, l.db, g.PutCompany); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutSalesRep); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutClient); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutAssignment); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutPurchaseOrder); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutJob); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutVendor); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutGmailMsg); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutClientAddress); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutClientEmail); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutClientPhone); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutColorSettings); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutUserSettings); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutUser); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutSession); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, l.db, g.PutKey); err != nil {
		return nil, err
	}
	return g, nil
}

// loadInto reads a whole table and hands each row to put
func loadInto[T any](ctx context.Context, db *gorm.DB, put func(T)) error {
	var rows []T
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		var zero T
		return fmt.Errorf("failed to load %T: %w", zero, err)
	}
	for _, row := range rows {
		put(row)
	}
	return nil
}

package domain

import (
	"cmp"
	"maps"
	"slices"
)

// AssignmentKey identifies a ClientSalesRepCompany row
type AssignmentKey struct {
	ClientID         string
	SalesRepUsername string
}

// GmailMsgKey identifies a GmailMsg row
type GmailMsgKey struct {
	ThreadID   string
	InboxMsgID string
	JobID      string
}

// Graph is an in-memory arena of records keyed by identity. Records refer to
// each other only through their foreign-key fields; with-relations views are
// built on request by looking the related records up, to a caller-chosen
// depth. A Graph is not safe for concurrent mutation.
type Graph struct {
	companies       map[int]Company
	salesReps       map[string]SalesRep
	clients         map[string]Client
	assignments     map[AssignmentKey]ClientSalesRepCompany
	purchaseOrders  map[int]PurchaseOrder
	jobs            map[string]Job
	vendors         map[int]Vendor
	gmailMsgs       map[GmailMsgKey]GmailMsg
	clientAddresses map[string]ClientAddress
	clientEmails    map[int]ClientEmail
	clientPhones    map[int]ClientPhone
	colorSettings   map[string]ColorSettings
	userSettings    map[string]UserSettings
	users           map[string]User
	sessions        map[string]Session
	keys            map[string]Key
}

// NewGraph returns an empty Graph
func NewGraph() *Graph {
	return &Graph{
		companies:       make(map[int]Company),
		salesReps:       make(map[string]SalesRep),
		clients:         make(map[string]Client),
		assignments:     make(map[AssignmentKey]ClientSalesRepCompany),
		purchaseOrders:  make(map[int]PurchaseOrder),
		jobs:            make(map[string]Job),
		vendors:         make(map[int]Vendor),
		gmailMsgs:       make(map[GmailMsgKey]GmailMsg),
		clientAddresses: make(map[string]ClientAddress),
		clientEmails:    make(map[int]ClientEmail),
		clientPhones:    make(map[int]ClientPhone),
		colorSettings:   make(map[string]ColorSettings),
		userSettings:    make(map[string]UserSettings),
		users:           make(map[string]User),
		sessions:        make(map[string]Session),
		keys:            make(map[string]Key),
	}
}

// Put* store a copy of the record, replacing any record with the same identity.

func (g *Graph) PutCompany(c Company)             { g.companies[c.ID] = c }
func (g *Graph) PutSalesRep(s SalesRep)           { g.salesReps[s.Username] = s }
func (g *Graph) PutClient(c Client)               { g.clients[c.ID] = c }
func (g *Graph) PutPurchaseOrder(p PurchaseOrder) { g.purchaseOrders[p.ID] = p }
func (g *Graph) PutJob(j Job)                     { g.jobs[j.ID] = j }
func (g *Graph) PutVendor(v Vendor)               { g.vendors[v.ID] = v }
func (g *Graph) PutClientAddress(a ClientAddress) { g.clientAddresses[a.ClientID] = a }
func (g *Graph) PutClientEmail(e ClientEmail)     { g.clientEmails[e.ID] = e }
func (g *Graph) PutClientPhone(p ClientPhone)     { g.clientPhones[p.ID] = p }
func (g *Graph) PutColorSettings(c ColorSettings) { g.colorSettings[c.Username] = c }
func (g *Graph) PutUserSettings(u UserSettings)   { g.userSettings[u.Username] = u }
func (g *Graph) PutUser(u User)                   { g.users[u.ID] = u }
func (g *Graph) PutSession(s Session)             { g.sessions[s.ID] = s }
func (g *Graph) PutKey(k Key)                     { g.keys[k.ID] = k }

func (g *Graph) PutAssignment(a ClientSalesRepCompany) {
	g.assignments[AssignmentKey{ClientID: a.ClientID, SalesRepUsername: a.SalesRepUsername}] = a
}

func (g *Graph) PutGmailMsg(m GmailMsg) {
	g.gmailMsgs[GmailMsgKey{ThreadID: m.ThreadID, InboxMsgID: m.InboxMsgID, JobID: m.JobID}] = m
}

// Lookups by identity

func (g *Graph) LookupClient(id string) (Client, bool) {
	c, ok := g.clients[id]
	return c, ok
}

func (g *Graph) LookupPurchaseOrder(id int) (PurchaseOrder, bool) {
	p, ok := g.purchaseOrders[id]
	return p, ok
}

func (g *Graph) LookupJob(id string) (Job, bool) {
	j, ok := g.jobs[id]
	return j, ok
}

// AssignmentsForClient returns the client's assignment rows, newest first
func (g *Graph) AssignmentsForClient(clientID string) []ClientSalesRepCompany {
	var out []ClientSalesRepCompany
	for _, a := range g.assignments {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b ClientSalesRepCompany) int {
		if c := b.FromDate.Compare(a.FromDate); c != 0 {
			return c
		}
		return cmp.Compare(a.SalesRepUsername, b.SalesRepUsername)
	})
	return out
}

// JobsForPurchaseOrder returns the jobs that name the order as their owner
func (g *Graph) JobsForPurchaseOrder(poID int) []Job {
	return filterSorted(g.jobs, func(j Job) bool { return j.PurchaseOrderID == poID })
}

// filterSorted returns the matching records of m in key order
func filterSorted[K cmp.Ordered, V any](m map[K]V, keep func(V) bool) []V {
	var out []V
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if v := m[k]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Company builds the with-relations view of a company. Relation fields are
// expanded while depth > 0; at depth 0 only the base shape is returned.
func (g *Graph) Company(id int, depth int) *CompanyWithRelations {
	c, ok := g.companies[id]
	if !ok {
		return nil
	}
	view := &CompanyWithRelations{Company: c}
	if depth <= 0 {
		return view
	}
	for _, s := range filterSorted(g.salesReps, func(s SalesRep) bool { return s.CompanyID == id }) {
		view.SalesReps = append(view.SalesReps, *g.SalesRep(s.Username, depth-1))
	}
	for _, cl := range filterSorted(g.clients, func(cl Client) bool { return cl.CompanyID == id }) {
		view.Clients = append(view.Clients, *g.Client(cl.ID, depth-1))
	}
	for _, a := range g.sortedAssignments(func(a ClientSalesRepCompany) bool { return a.CompanyID == id }) {
		view.Assignments = append(view.Assignments, *g.assignmentView(a, depth-1))
	}
	return view
}

func (g *Graph) SalesRep(username string, depth int) *SalesRepWithRelations {
	s, ok := g.salesReps[username]
	if !ok {
		return nil
	}
	view := &SalesRepWithRelations{SalesRep: s}
	if depth <= 0 {
		return view
	}
	view.Company = g.Company(s.CompanyID, depth-1)
	view.User = g.User(s.UserID, depth-1)
	view.ColorSettings = g.ColorSettings(username, depth-1)
	for _, cl := range filterSorted(g.clients, func(cl Client) bool { return cl.SalesRepUsername == username }) {
		view.Clients = append(view.Clients, *g.Client(cl.ID, depth-1))
	}
	for _, a := range g.sortedAssignments(func(a ClientSalesRepCompany) bool { return a.SalesRepUsername == username }) {
		view.Assignments = append(view.Assignments, *g.assignmentView(a, depth-1))
	}
	return view
}

func (g *Graph) Client(id string, depth int) *ClientWithRelations {
	c, ok := g.clients[id]
	if !ok {
		return nil
	}
	view := &ClientWithRelations{Client: c}
	if depth <= 0 {
		return view
	}
	view.Company = g.Company(c.CompanyID, depth-1)
	view.SalesRep = g.SalesRep(c.SalesRepUsername, depth-1)
	view.Address = g.ClientAddress(id, depth-1)
	for _, e := range filterSorted(g.clientEmails, func(e ClientEmail) bool { return e.ClientID == id }) {
		view.Emails = append(view.Emails, *g.ClientEmail(e.ID, depth-1))
	}
	for _, p := range filterSorted(g.clientPhones, func(p ClientPhone) bool { return p.ClientID == id }) {
		view.Phones = append(view.Phones, *g.ClientPhone(p.ID, depth-1))
	}
	for _, po := range filterSorted(g.purchaseOrders, func(po PurchaseOrder) bool { return po.ClientID == id }) {
		view.PurchaseOrders = append(view.PurchaseOrders, *g.PurchaseOrder(po.ID, depth-1))
	}
	for _, a := range g.AssignmentsForClient(id) {
		view.Assignments = append(view.Assignments, *g.assignmentView(a, depth-1))
	}
	return view
}

// Assignment builds the view of one assignment row
func (g *Graph) Assignment(key AssignmentKey, depth int) *ClientSalesRepCompanyWithRelations {
	a, ok := g.assignments[key]
	if !ok {
		return nil
	}
	return g.assignmentView(a, depth)
}

func (g *Graph) assignmentView(a ClientSalesRepCompany, depth int) *ClientSalesRepCompanyWithRelations {
	view := &ClientSalesRepCompanyWithRelations{ClientSalesRepCompany: a}
	if depth <= 0 {
		return view
	}
	view.Client = g.Client(a.ClientID, depth-1)
	view.SalesRep = g.SalesRep(a.SalesRepUsername, depth-1)
	view.Company = g.Company(a.CompanyID, depth-1)
	return view
}

func (g *Graph) sortedAssignments(keep func(ClientSalesRepCompany) bool) []ClientSalesRepCompany {
	var out []ClientSalesRepCompany
	for _, a := range g.assignments {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b ClientSalesRepCompany) int {
		if c := cmp.Compare(a.ClientID, b.ClientID); c != 0 {
			return c
		}
		return cmp.Compare(a.SalesRepUsername, b.SalesRepUsername)
	})
	return out
}

func (g *Graph) PurchaseOrder(id int, depth int) *PurchaseOrderWithRelations {
	po, ok := g.purchaseOrders[id]
	if !ok {
		return nil
	}
	view := &PurchaseOrderWithRelations{PurchaseOrder: po}
	if depth <= 0 {
		return view
	}
	view.Client = g.Client(po.ClientID, depth-1)
	for _, j := range g.JobsForPurchaseOrder(id) {
		view.Jobs = append(view.Jobs, *g.Job(j.ID, depth-1))
	}
	if po.PrimaryJobID != nil {
		view.PrimaryJob = g.Job(*po.PrimaryJobID, depth-1)
	}
	return view
}

func (g *Graph) Job(id string, depth int) *JobWithRelations {
	j, ok := g.jobs[id]
	if !ok {
		return nil
	}
	view := &JobWithRelations{Job: j}
	if depth <= 0 {
		return view
	}
	view.Vendor = g.Vendor(j.VendorID, depth-1)
	view.PurchaseOrder = g.PurchaseOrder(j.PurchaseOrderID, depth-1)
	for _, k := range g.sortedGmailKeys(id) {
		view.GmailMsgs = append(view.GmailMsgs, *g.GmailMsg(k, depth-1))
	}
	return view
}

func (g *Graph) sortedGmailKeys(jobID string) []GmailMsgKey {
	var out []GmailMsgKey
	for k := range g.gmailMsgs {
		if k.JobID == jobID {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, func(a, b GmailMsgKey) int {
		if c := cmp.Compare(a.ThreadID, b.ThreadID); c != 0 {
			return c
		}
		return cmp.Compare(a.InboxMsgID, b.InboxMsgID)
	})
	return out
}

func (g *Graph) Vendor(id int, depth int) *VendorWithRelations {
	v, ok := g.vendors[id]
	if !ok {
		return nil
	}
	view := &VendorWithRelations{Vendor: v}
	if depth <= 0 {
		return view
	}
	for _, j := range filterSorted(g.jobs, func(j Job) bool { return j.VendorID == id }) {
		view.Jobs = append(view.Jobs, *g.Job(j.ID, depth-1))
	}
	return view
}

func (g *Graph) GmailMsg(key GmailMsgKey, depth int) *GmailMsgWithRelations {
	m, ok := g.gmailMsgs[key]
	if !ok {
		return nil
	}
	view := &GmailMsgWithRelations{GmailMsg: m}
	if depth > 0 {
		view.Job = g.Job(m.JobID, depth-1)
	}
	return view
}

func (g *Graph) ClientAddress(clientID string, depth int) *ClientAddressWithRelations {
	a, ok := g.clientAddresses[clientID]
	if !ok {
		return nil
	}
	view := &ClientAddressWithRelations{ClientAddress: a}
	if depth > 0 {
		view.Client = g.Client(clientID, depth-1)
	}
	return view
}

func (g *Graph) ClientEmail(id int, depth int) *ClientEmailWithRelations {
	e, ok := g.clientEmails[id]
	if !ok {
		return nil
	}
	view := &ClientEmailWithRelations{ClientEmail: e}
	if depth > 0 {
		view.Client = g.Client(e.ClientID, depth-1)
	}
	return view
}

func (g *Graph) ClientPhone(id int, depth int) *ClientPhoneWithRelations {
	p, ok := g.clientPhones[id]
	if !ok {
		return nil
	}
	view := &ClientPhoneWithRelations{ClientPhone: p}
	if depth > 0 {
		view.Client = g.Client(p.ClientID, depth-1)
	}
	return view
}

func (g *Graph) ColorSettings(username string, depth int) *ColorSettingsWithRelations {
	c, ok := g.colorSettings[username]
	if !ok {
		return nil
	}
	view := &ColorSettingsWithRelations{ColorSettings: c}
	if depth > 0 {
		view.SalesRep = g.SalesRep(username, depth-1)
	}
	return view
}

func (g *Graph) UserSettings(username string, depth int) *UserSettingsWithRelations {
	u, ok := g.userSettings[username]
	if !ok {
		return nil
	}
	view := &UserSettingsWithRelations{UserSettings: u}
	if depth > 0 {
		view.User = g.userByUsername(username, depth-1)
	}
	return view
}

func (g *Graph) userByUsername(username string, depth int) *UserWithRelations {
	matches := filterSorted(g.users, func(u User) bool { return u.Username == username })
	if len(matches) == 0 {
		return nil
	}
	return g.User(matches[0].ID, depth)
}

func (g *Graph) User(id string, depth int) *UserWithRelations {
	u, ok := g.users[id]
	if !ok {
		return nil
	}
	view := &UserWithRelations{User: u}
	if depth <= 0 {
		return view
	}
	if reps := filterSorted(g.salesReps, func(s SalesRep) bool { return s.UserID == id }); len(reps) > 0 {
		view.SalesRep = g.SalesRep(reps[0].Username, depth-1)
	}
	view.Settings = g.UserSettings(u.Username, depth-1)
	for _, s := range filterSorted(g.sessions, func(s Session) bool { return s.UserID == id }) {
		view.Sessions = append(view.Sessions, *g.Session(s.ID, depth-1))
	}
	for _, k := range filterSorted(g.keys, func(k Key) bool { return k.UserID == id }) {
		view.Keys = append(view.Keys, *g.Key(k.ID, depth-1))
	}
	return view
}

func (g *Graph) Session(id string, depth int) *SessionWithRelations {
	s, ok := g.sessions[id]
	if !ok {
		return nil
	}
	view := &SessionWithRelations{Session: s}
	if depth > 0 {
		view.User = g.User(s.UserID, depth-1)
	}
	return view
}

func (g *Graph) Key(id string, depth int) *KeyWithRelations {
	k, ok := g.keys[id]
	if !ok {
		return nil
	}
	view := &KeyWithRelations{Key: k}
	if depth > 0 {
		view.User = g.User(k.UserID, depth-1)
	}
	return view
}

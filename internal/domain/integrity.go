package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrIntegrity is wrapped by every IntegrityError
var ErrIntegrity = errors.New("relational integrity violation")

// Integrity rule names
const (
	RulePrimaryJobCycle        = "primary_job_cycle"
	RuleSingleActiveAssignment = "single_active_assignment"
	RuleAssignmentMismatch     = "assignment_mismatch"
)

// IntegrityError reports a cross-entity rule that a set of records breaks.
// Unlike validation errors it is never tied to a single field.
type IntegrityError struct {
	Rule   string
	Entity string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Rule, e.Entity, e.Detail)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// CheckPurchaseOrder verifies that the order's primary job, if any, exists
// and belongs to the order.
func CheckPurchaseOrder(po PurchaseOrder, primary *Job) error {
	if po.PrimaryJobID == nil {
		return nil
	}
	entity := fmt.Sprintf("purchaseOrder %d", po.ID)
	if primary == nil || primary.ID != *po.PrimaryJobID {
		return &IntegrityError{
			Rule:   RulePrimaryJobCycle,
			Entity: entity,
			Detail: fmt.Sprintf("primary job %s does not exist", *po.PrimaryJobID),
		}
	}
	if primary.PurchaseOrderID != po.ID {
		return &IntegrityError{
			Rule:   RulePrimaryJobCycle,
			Entity: entity,
			Detail: fmt.Sprintf("primary job %s belongs to purchase order %d", primary.ID, primary.PurchaseOrderID),
		}
	}
	return nil
}

// CheckClientAssignments verifies the assignment rows of one client: exactly
// one is active, the active one is open, and it names the same rep and
// company as the client.
func CheckClientAssignments(client Client, rows []ClientSalesRepCompany) []error {
	entity := fmt.Sprintf("client %s", client.ID)
	var errs []error
	var active []ClientSalesRepCompany
	for _, a := range rows {
		if a.ClientID != client.ID || !a.IsActive {
			continue
		}
		active = append(active, a)
		if a.ToDate != nil {
			errs = append(errs, &IntegrityError{
				Rule:   RuleSingleActiveAssignment,
				Entity: entity,
				Detail: fmt.Sprintf("active assignment to %s has a toDate", a.SalesRepUsername),
			})
		}
	}

	switch {
	case len(active) == 0:
		errs = append(errs, &IntegrityError{
			Rule:   RuleAssignmentMismatch,
			Entity: entity,
			Detail: fmt.Sprintf("no active assignment but client has %s/%d",
				client.SalesRepUsername, client.CompanyID),
		})
	case len(active) > 1:
		names := make([]string, 0, len(active))
		for _, a := range active {
			names = append(names, a.SalesRepUsername)
		}
		errs = append(errs, &IntegrityError{
			Rule:   RuleSingleActiveAssignment,
			Entity: entity,
			Detail: fmt.Sprintf("%d active assignments: %v", len(active), names),
		})
	case len(active) == 1:
		a := active[0]
		if a.SalesRepUsername != client.SalesRepUsername || a.CompanyID != client.CompanyID {
			errs = append(errs, &IntegrityError{
				Rule:   RuleAssignmentMismatch,
				Entity: entity,
				Detail: fmt.Sprintf("active assignment is %s/%d but client has %s/%d",
					a.SalesRepUsername, a.CompanyID, client.SalesRepUsername, client.CompanyID),
			})
		}
	}
	return errs
}

// CheckPrimaryJobs runs CheckPurchaseOrder over every order in the graph
func (g *Graph) CheckPrimaryJobs() []error {
	var errs []error
	for _, id := range slices.Sorted(maps.Keys(g.purchaseOrders)) {
		po := g.purchaseOrders[id]
		if po.PrimaryJobID == nil {
			continue
		}
		var primary *Job
		if j, ok := g.jobs[*po.PrimaryJobID]; ok {
			primary = &j
		}
		if err := CheckPurchaseOrder(po, primary); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// CheckActiveAssignments runs CheckClientAssignments over every client in
// the graph. Active rows of clients the graph does not hold are checked for
// uniqueness only.
func (g *Graph) CheckActiveAssignments() []error {
	var errs []error
	for _, id := range slices.Sorted(maps.Keys(g.clients)) {
		errs = append(errs, CheckClientAssignments(g.clients[id], g.AssignmentsForClient(id))...)
	}

	orphans := make(map[string]int)
	for _, a := range g.assignments {
		if _, ok := g.clients[a.ClientID]; !ok && a.IsActive {
			orphans[a.ClientID]++
		}
	}
	for _, id := range slices.Sorted(maps.Keys(orphans)) {
		if n := orphans[id]; n > 1 {
			errs = append(errs, &IntegrityError{
				Rule:   RuleSingleActiveAssignment,
				Entity: fmt.Sprintf("client %s", id),
				Detail: fmt.Sprintf("%d active assignments", n),
			})
		}
	}
	return errs
}

// CheckIntegrity runs every graph rule and joins the violations. It returns
// nil when the graph is consistent.
func (g *Graph) CheckIntegrity() error {
	return errors.Join(append(g.CheckPrimaryJobs(), g.CheckActiveAssignments()...)...)
}

// IntegrityErrors unpacks the violations carried by err
func IntegrityErrors(err error) []*IntegrityError {
	if err == nil {
		return nil
	}
	var out []*IntegrityError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, IntegrityErrors(e)...)
		}
		return out
	}
	var ie *IntegrityError
	if errors.As(err, &ie) {
		out = append(out, ie)
	}
	return out
}

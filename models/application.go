package models

import "time"

// ApplicationStatus is the lifecycle state of a subscription request.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Preferred plans a customer can apply for.
const (
	PlanOneTimeDay   = "oneTimeDay"
	PlanOneTimeNight = "oneTimeNight"
	PlanTwoTimes     = "twoTimes"
)

// Application is a customer's request to subscribe to a service. Customers
// may submit duplicates; only the status field is ever mutated, by the
// owning provider. Applications are never deleted.
type Application struct {
	ID            string            `bson:"id" json:"id"`
	ServiceID     string            `bson:"serviceId" json:"serviceId"`
	CustomerID    string            `bson:"customerId" json:"customerId"`
	CustomerName  string            `bson:"customerName" json:"customerName"`
	CustomerEmail string            `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone string            `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	PreferredPlan string            `bson:"preferredPlan" json:"preferredPlan"`
	Message       string            `bson:"message,omitempty" json:"message,omitempty"`
	Status        ApplicationStatus `bson:"status" json:"status"`
	AppliedAt     time.Time         `bson:"appliedAt" json:"appliedAt"`
}

// ApplicationView is an application joined to its service and the caller's
// review state, as shown on the customer's applications screen.
type ApplicationView struct {
	Application `bson:",inline"`
	Service     *Service `json:"service,omitempty"`
	HasReviewed bool     `json:"hasReviewed"`
}

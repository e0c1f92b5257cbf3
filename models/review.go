package models

import "time"

// Review is a customer's post-acceptance rating of a service. Intended to be
// unique per (customerId, serviceId); enforced by a pre-write query, not a
// store constraint.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	ServiceID    string    `bson:"serviceId" json:"serviceId"`
	CustomerID   string    `bson:"customerId" json:"customerId"`
	CustomerName string    `bson:"customerName" json:"customerName"`
	Rating       int       `bson:"rating" json:"rating"`
	Comment      string    `bson:"comment" json:"comment"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

package models

import "time"

// Service types offered by a provider.
const (
	ServiceTypeDineIn = "dineIn"
	ServiceTypeParcel = "parcel"
)

// ServicePricing holds the three plan prices, in whole currency units.
type ServicePricing struct {
	OneTimeDay       int `bson:"oneTimeDay" json:"oneTimeDay"`
	OneTimeNight     int `bson:"oneTimeNight" json:"oneTimeNight"`
	TwoTimesPerMonth int `bson:"twoTimesPerMonth" json:"twoTimesPerMonth"`
}

// ServiceRatings is the materialized review aggregate for a service.
// Average must equal the mean of all review ratings for the service and
// Count their number; both are maintained transactionally on submission and
// repaired by the reconciler sweep.
type ServiceRatings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// MenuDay describes the day and night meal for one weekday.
type MenuDay struct {
	Day   string `bson:"day,omitempty" json:"day,omitempty"`
	Night string `bson:"night,omitempty" json:"night,omitempty"`
}

// Holiday is a planned day off with its reason.
type Holiday struct {
	Date   string `bson:"date" json:"date"`
	Reason string `bson:"reason" json:"reason"`
}

// Service is a provider's tiffin listing. One active service per provider by
// convention; ownership is exclusive to ProviderID.
type Service struct {
	ID          string             `bson:"id" json:"id"`
	ProviderID  string             `bson:"providerId" json:"providerId"`
	ServiceName string             `bson:"serviceName" json:"serviceName"`
	Description string             `bson:"description" json:"description"`
	Location    Location           `bson:"location" json:"location"`
	ServiceType []string           `bson:"serviceType" json:"serviceType"`
	Pricing     ServicePricing     `bson:"pricing" json:"pricing"`
	ContactInfo string             `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	// ImagePublicID is the storage handle for ImageURL, kept so a replaced
	// image can be deleted. Never exposed to clients.
	ImagePublicID string             `bson:"imagePublicId,omitempty" json:"-"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Ratings       ServiceRatings     `bson:"ratings" json:"ratings"`
	WeeklyMenu    map[string]MenuDay `bson:"weeklyMenu,omitempty" json:"weeklyMenu,omitempty"`
	Holidays      []Holiday          `bson:"holidays,omitempty" json:"holidays,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasType reports whether the service offers the given type.
func (s *Service) HasType(t string) bool {
	for _, st := range s.ServiceType {
		if st == t {
			return true
		}
	}
	return false
}

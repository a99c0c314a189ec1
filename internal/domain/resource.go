package domain

import "fmt"

// Resource names an asynchronous operation that has its own loading flag
type Resource string

const (
	ResourceServices      Resource = "services"
	ResourceDates         Resource = "dates"
	ResourceTimeSlots     Resource = "timeSlots"
	ResourceBooking       Resource = "booking"
	ResourceCancellation  Resource = "cancellation"
	ResourceRescheduling  Resource = "rescheduling"
	ResourcePaymentIntent Resource = "paymentIntent"
)

// AllResources lists every resource with a loading flag
var AllResources = []Resource{
	ResourceServices,
	ResourceDates,
	ResourceTimeSlots,
	ResourceBooking,
	ResourceCancellation,
	ResourceRescheduling,
	ResourcePaymentIntent,
}

// ParseResource validates a resource name
func ParseResource(name string) (Resource, error) {
	for _, r := range AllResources {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

package dto

// CreateInquiryRequest is the booking inquiry form.
type CreateInquiryRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Email      string  `json:"email" validate:"required,email,max=254"`
	Phone      string  `json:"phone" validate:"required,min=7,max=20"`
	EventType  string  `json:"eventType" validate:"required,event_type"`
	EventDate  string  `json:"eventDate" validate:"required,datetime=2006-01-02"`
	Location   string  `json:"location" validate:"required,max=200"`
	GuestCount *int    `json:"guestCount" validate:"omitempty,gte=0,lte=100000"`
	Budget     *string `json:"budget" validate:"omitempty,budget_range"`
	Message    string  `json:"message" validate:"max=2000"`
}

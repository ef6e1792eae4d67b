package models

import (
	"strings"
	"time"
)

// EventType says how often an event recurs.
type EventType string

const (
	EventWeekly  EventType = "weekly"
	EventMonthly EventType = "monthly"
	EventOneTime EventType = "one-time"
)

// Valid reports whether the event type is one of the known values.
func (t EventType) Valid() bool {
	switch t {
	case EventWeekly, EventMonthly, EventOneTime:
		return true
	}
	return false
}

// DealType is the commercial arrangement with the venue.
type DealType string

const (
	DealRevenueShare         DealType = "revenue-share"
	DealRevenueShareEntrance DealType = "revenue-share-entrance"
)

// Valid reports whether the deal type is one of the known values.
func (t DealType) Valid() bool {
	return t == DealRevenueShare || t == DealRevenueShareEntrance
}

// PaymentTerms is how long the venue takes to pay out.
type PaymentTerms string

const (
	PayOneWeek    PaymentTerms = "one-week"
	PayTwoWeeks   PaymentTerms = "two-weeks"
	PayThreeWeeks PaymentTerms = "three-weeks"
	PayOneMonth   PaymentTerms = "one-month"
)

// Valid reports whether the payment terms are one of the known values.
func (t PaymentTerms) Valid() bool {
	switch t {
	case PayOneWeek, PayTwoWeeks, PayThreeWeeks, PayOneMonth:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Event represents a booking and its deal terms.
//
// The schedule follows the event type: weekly events carry DayOfWeek,
// monthly and one-time events carry EventDate. The other field is empty.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// UserID is the owning user, empty for legacy rows created before
	// accounts existed.
	UserID string `json:"userId,omitempty"`

	Name      string    `json:"name"`
	EventType EventType `json:"eventType"`
	DayOfWeek string    `json:"dayOfWeek,omitempty"`
	EventDate string    `json:"eventDate,omitempty"`
	VenueName string    `json:"venueName"`

	// DealType selects the commercial arrangement; EntranceShare is only
	// meaningful (and required) for revenue-share-entrance deals.
	DealType      DealType `json:"dealType"`
	EntranceShare string   `json:"entranceShare,omitempty"`

	// Commissions is a free-text description of the commission brackets.
	Commissions             string       `json:"commissions"`
	IsProgressiveCommission bool         `json:"isProgressiveCommission"`
	PaymentTerms            PaymentTerms `json:"paymentTerms"`

	Status EventStatus `json:"status"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	// Expenses is populated on single-event reads and after creation.
	Expenses []Expense `json:"expenses,omitempty"`
}

// EventInput is the payload for creating an event, optionally together with
// its initial expense line items.
type EventInput struct {
	Name                    string         `json:"name"`
	EventType               EventType      `json:"eventType"`
	DayOfWeek               string         `json:"dayOfWeek"`
	EventDate               string         `json:"eventDate"`
	VenueName               string         `json:"venueName"`
	DealType                DealType       `json:"dealType"`
	Commissions             string         `json:"commissions"`
	IsProgressiveCommission bool           `json:"isProgressiveCommission"`
	PaymentTerms            PaymentTerms   `json:"paymentTerms"`
	EntranceShare           string         `json:"entranceShare"`
	Status                  EventStatus    `json:"status"`
	Expenses                []ExpenseInput `json:"expenses"`
}

// Validate checks all event fields plus every nested expense item.
func (in *EventInput) Validate() *ValidationError {
	var errs []FieldError

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !in.EventType.Valid() {
		errs = append(errs, FieldError{Field: "eventType", Message: "eventType must be weekly, monthly or one-time"})
	} else {
		errs = append(errs, scheduleErrors(in.EventType, in.DayOfWeek, in.EventDate)...)
	}
	if strings.TrimSpace(in.VenueName) == "" {
		errs = append(errs, FieldError{Field: "venueName", Message: "venueName is required"})
	}
	if !in.DealType.Valid() {
		errs = append(errs, FieldError{Field: "dealType", Message: "dealType must be revenue-share or revenue-share-entrance"})
	} else if in.DealType == DealRevenueShareEntrance && strings.TrimSpace(in.EntranceShare) == "" {
		errs = append(errs, FieldError{Field: "entranceShare", Message: "entranceShare is required for revenue-share-entrance deals"})
	}
	if strings.TrimSpace(in.Commissions) == "" {
		errs = append(errs, FieldError{Field: "commissions", Message: "commissions is required"})
	}
	if !in.PaymentTerms.Valid() {
		errs = append(errs, FieldError{Field: "paymentTerms", Message: "paymentTerms must be one-week, two-weeks, three-weeks or one-month"})
	}
	if in.Status != "" && !in.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "status must be upcoming, completed or cancelled"})
	}

	for _, exp := range in.Expenses {
		if verr := exp.Validate(); verr != nil {
			errs = append(errs, verr.Errors...)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// scheduleErrors enforces the eventType/schedule pairing: weekly events use
// dayOfWeek, dated events use eventDate, never both.
func scheduleErrors(t EventType, dayOfWeek, eventDate string) []FieldError {
	var errs []FieldError
	switch t {
	case EventWeekly:
		if strings.TrimSpace(dayOfWeek) == "" {
			errs = append(errs, FieldError{Field: "dayOfWeek", Message: "dayOfWeek is required for weekly events"})
		}
		if eventDate != "" {
			errs = append(errs, FieldError{Field: "eventDate", Message: "eventDate must be empty for weekly events"})
		}
	case EventMonthly, EventOneTime:
		if eventDate == "" {
			errs = append(errs, FieldError{Field: "eventDate", Message: "eventDate is required for " + string(t) + " events"})
		} else if !ValidDate(eventDate) {
			errs = append(errs, FieldError{Field: "eventDate", Message: "eventDate must be a valid YYYY-MM-DD date"})
		}
		if dayOfWeek != "" {
			errs = append(errs, FieldError{Field: "dayOfWeek", Message: "dayOfWeek must be empty for " + string(t) + " events"})
		}
	}
	return errs
}

// ToEvent builds an Event from validated input. Storage assigns ID and
// timestamps; the status defaults to upcoming when not provided.
func (in *EventInput) ToEvent(userID string) *Event {
	status := in.Status
	if status == "" {
		status = StatusUpcoming
	}
	return &Event{
		UserID:                  userID,
		Name:                    strings.TrimSpace(in.Name),
		EventType:               in.EventType,
		DayOfWeek:               strings.TrimSpace(in.DayOfWeek),
		EventDate:               in.EventDate,
		VenueName:               strings.TrimSpace(in.VenueName),
		DealType:                in.DealType,
		Commissions:             strings.TrimSpace(in.Commissions),
		IsProgressiveCommission: in.IsProgressiveCommission,
		PaymentTerms:            in.PaymentTerms,
		EntranceShare:           strings.TrimSpace(in.EntranceShare),
		Status:                  status,
	}
}

// EventPatch is a partial update; nil fields are left untouched.
type EventPatch struct {
	Name                    *string       `json:"name"`
	EventType               *EventType    `json:"eventType"`
	DayOfWeek               *string       `json:"dayOfWeek"`
	EventDate               *string       `json:"eventDate"`
	VenueName               *string       `json:"venueName"`
	DealType                *DealType     `json:"dealType"`
	Commissions             *string       `json:"commissions"`
	IsProgressiveCommission *bool         `json:"isProgressiveCommission"`
	PaymentTerms            *PaymentTerms `json:"paymentTerms"`
	EntranceShare           *string       `json:"entranceShare"`
	Status                  *EventStatus  `json:"status"`
}

// Apply copies the provided fields onto the event and re-validates the
// resulting schedule and deal invariants.
func (p *EventPatch) Apply(ev *Event) *ValidationError {
	var errs []FieldError

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name is required"})
		} else {
			ev.Name = strings.TrimSpace(*p.Name)
		}
	}
	if p.EventType != nil {
		if !p.EventType.Valid() {
			errs = append(errs, FieldError{Field: "eventType", Message: "eventType must be weekly, monthly or one-time"})
		} else {
			ev.EventType = *p.EventType
		}
	}
	if p.DayOfWeek != nil {
		ev.DayOfWeek = strings.TrimSpace(*p.DayOfWeek)
	}
	if p.EventDate != nil {
		ev.EventDate = *p.EventDate
	}
	if p.VenueName != nil {
		if strings.TrimSpace(*p.VenueName) == "" {
			errs = append(errs, FieldError{Field: "venueName", Message: "venueName is required"})
		} else {
			ev.VenueName = strings.TrimSpace(*p.VenueName)
		}
	}
	if p.DealType != nil {
		if !p.DealType.Valid() {
			errs = append(errs, FieldError{Field: "dealType", Message: "dealType must be revenue-share or revenue-share-entrance"})
		} else {
			ev.DealType = *p.DealType
		}
	}
	if p.Commissions != nil {
		ev.Commissions = strings.TrimSpace(*p.Commissions)
	}
	if p.IsProgressiveCommission != nil {
		ev.IsProgressiveCommission = *p.IsProgressiveCommission
	}
	if p.PaymentTerms != nil {
		if !p.PaymentTerms.Valid() {
			errs = append(errs, FieldError{Field: "paymentTerms", Message: "paymentTerms must be one-week, two-weeks, three-weeks or one-month"})
		} else {
			ev.PaymentTerms = *p.PaymentTerms
		}
	}
	if p.EntranceShare != nil {
		ev.EntranceShare = strings.TrimSpace(*p.EntranceShare)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			errs = append(errs, FieldError{Field: "status", Message: "status must be upcoming, completed or cancelled"})
		} else {
			ev.Status = *p.Status
		}
	}

	errs = append(errs, scheduleErrors(ev.EventType, ev.DayOfWeek, ev.EventDate)...)
	if ev.DealType == DealRevenueShareEntrance && ev.EntranceShare == "" {
		errs = append(errs, FieldError{Field: "entranceShare", Message: "entranceShare is required for revenue-share-entrance deals"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

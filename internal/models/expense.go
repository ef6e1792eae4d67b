package models

import (
	"strings"
	"time"
)

// ExpenseCategory buckets what the money was spent on.
type ExpenseCategory string

const (
	CategoryPromoter      ExpenseCategory = "Promoter"
	CategoryStaff         ExpenseCategory = "Staff"
	CategoryVenue         ExpenseCategory = "Venue"
	CategoryAdSpend       ExpenseCategory = "Ad Spend"
	CategoryCommission    ExpenseCategory = "Commission"
	CategoryEntertainment ExpenseCategory = "Entertainment"
	CategorySupplies      ExpenseCategory = "Supplies"
	CategoryOther         ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category, in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryPromoter, CategoryStaff, CategoryVenue, CategoryAdSpend,
	CategoryCommission, CategoryEntertainment, CategorySupplies, CategoryOther,
}

// Valid reports whether the category is one of the known values.
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodCard         PaymentMethod = "Card"
	MethodOther        PaymentMethod = "Other"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCard, MethodOther:
		return true
	}
	return false
}

// Expense is a cost line item belonging to exactly one event.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// EventID is the owning event. Expenses are deleted with their event.
	EventID string `json:"eventId"`

	Category    ExpenseCategory `json:"category"`
	Amount      Money           `json:"amount"`
	Description string          `json:"description,omitempty"`

	// PaymentDate is a YYYY-MM-DD date, defaulting to the creation date.
	PaymentDate   string        `json:"paymentDate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	// Receipt is a free-text reference to the receipt, if any.
	Receipt string `json:"receipt,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// ExpenseInput is the payload for creating an expense, standalone or nested
// inside an event creation request.
type ExpenseInput struct {
	Category      ExpenseCategory `json:"category"`
	Amount        Money           `json:"amount"`
	Description   string          `json:"description"`
	PaymentDate   string          `json:"paymentDate"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Receipt       string          `json:"receipt"`
}

// Validate checks the expense fields and returns field-level errors.
func (in *ExpenseInput) Validate() *ValidationError {
	var errs []FieldError

	if !in.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: "category must be one of the known expense categories"})
	}
	if !in.Amount.IsSet() || !in.Amount.IsValid() {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be a number"})
	} else if !in.Amount.Positive() {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if in.PaymentDate != "" && !ValidDate(in.PaymentDate) {
		errs = append(errs, FieldError{Field: "paymentDate", Message: "paymentDate must be a valid YYYY-MM-DD date"})
	}
	if in.PaymentMethod != "" && !in.PaymentMethod.Valid() {
		errs = append(errs, FieldError{Field: "paymentMethod", Message: "paymentMethod must be Cash, Bank Transfer, Card or Other"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ToExpense builds an Expense from validated input, filling in the payment
// date and method defaults. Storage assigns ID and timestamps.
func (in *ExpenseInput) ToExpense(eventID string) *Expense {
	paymentDate := in.PaymentDate
	if paymentDate == "" {
		paymentDate = time.Now().Format(DateLayout)
	}
	method := in.PaymentMethod
	if method == "" {
		method = MethodCash
	}
	return &Expense{
		EventID:       eventID,
		Category:      in.Category,
		Amount:        in.Amount,
		Description:   strings.TrimSpace(in.Description),
		PaymentDate:   paymentDate,
		PaymentMethod: method,
		Receipt:       strings.TrimSpace(in.Receipt),
	}
}

// ExpensePatch is a partial update; nil fields are left untouched.
type ExpensePatch struct {
	Category      *ExpenseCategory `json:"category"`
	Amount        *Money           `json:"amount"`
	Description   *string          `json:"description"`
	PaymentDate   *string          `json:"paymentDate"`
	PaymentMethod *PaymentMethod   `json:"paymentMethod"`
	Receipt       *string          `json:"receipt"`
}

// Apply copies the provided fields onto the expense, validating each one.
func (p *ExpensePatch) Apply(exp *Expense) *ValidationError {
	var errs []FieldError

	if p.Category != nil {
		if !p.Category.Valid() {
			errs = append(errs, FieldError{Field: "category", Message: "category must be one of the known expense categories"})
		} else {
			exp.Category = *p.Category
		}
	}
	if p.Amount != nil {
		if !p.Amount.IsValid() {
			errs = append(errs, FieldError{Field: "amount", Message: "amount must be a number"})
		} else if !p.Amount.Positive() {
			errs = append(errs, FieldError{Field: "amount", Message: "amount must be greater than zero"})
		} else {
			exp.Amount = *p.Amount
		}
	}
	if p.Description != nil {
		exp.Description = strings.TrimSpace(*p.Description)
	}
	if p.PaymentDate != nil {
		if !ValidDate(*p.PaymentDate) {
			errs = append(errs, FieldError{Field: "paymentDate", Message: "paymentDate must be a valid YYYY-MM-DD date"})
		} else {
			exp.PaymentDate = *p.PaymentDate
		}
	}
	if p.PaymentMethod != nil {
		if !p.PaymentMethod.Valid() {
			errs = append(errs, FieldError{Field: "paymentMethod", Message: "paymentMethod must be Cash, Bank Transfer, Card or Other"})
		} else {
			exp.PaymentMethod = *p.PaymentMethod
		}
	}
	if p.Receipt != nil {
		exp.Receipt = strings.TrimSpace(*p.Receipt)
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

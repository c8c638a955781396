package fee

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Status string

const (
	Paid    Status = "paid"
	Partial Status = "partial"
	Unpaid  Status = "unpaid"
)

// StatusOf derives a payment status: paid once paid covers amount, partial for anything in between.
func StatusOf(amount, paid float64) Status {
	switch {
	case paid >= amount:
		return Paid
	case paid > 0:
		return Partial
	default:
		return Unpaid
	}
}

type Fee struct {
	ID      int     `json:"id"`
	Class   string  `json:"class"`
	FeeType string  `json:"fee_type"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
}

// Payment is what a student paid towards a Fee, keyed by (StudentID, FeeID).
type Payment struct {
	ID          int     `json:"id"`
	StudentID   int     `json:"student_id"`
	FeeID       int     `json:"fee_id"`
	FeeType     string  `json:"fee_type"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"`
	PaidAmount  float64 `json:"paid_amount"`
	PaymentDate string  `json:"payment_date,omitempty"`
	ReceiptNo   string  `json:"receipt_no,omitempty"`
	Status      Status  `json:"status"` // derived
}

func (p Payment) Balance() float64 {
	if b := p.Amount - p.PaidAmount; b > 0 {
		return b
	}
	return 0
}

type NewFee struct {
	Class   string  `json:"class" validate:"required"`
	FeeType string  `json:"fee_type" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	DueDate string  `json:"due_date" validate:"required,datetime=2006-01-02"`
}

func (nf *NewFee) Validate(validate *validator.Validate) error {
	nf.Class = core.CleanString(nf.Class)
	nf.FeeType = core.CleanString(nf.FeeType)
	return validate.Struct(nf)
}

// NewPayment is an installment collected from a student.
type NewPayment struct {
	StudentID   int     `json:"student_id" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	ReceiptNo   string  `json:"receipt_no"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.ReceiptNo = core.CleanString(np.ReceiptNo)
	return validate.Struct(np)
}

type QueryFilter struct {
	Class   string `query:"class"`
	FeeType string `query:"fee_type"`
	DueFrom string `query:"due_from"`
	DueTo   string `query:"due_to"`
}

func (qf QueryFilter) Match(f Fee) bool {
	if qf.Class != "" && f.Class != qf.Class {
		return false
	}
	if qf.FeeType != "" && f.FeeType != qf.FeeType {
		return false
	}
	if qf.DueFrom != "" && f.DueDate < qf.DueFrom {
		return false
	}
	if qf.DueTo != "" && f.DueDate > qf.DueTo {
		return false
	}
	return true
}

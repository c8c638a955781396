package fee

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/directory"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound        = core.NewNotFoundError("fee")
	ErrPaymentNotFound = core.NewNotFoundError("payment")
)

type (
	Repository interface {
		CreateFee(f Fee) (Fee, error)
		GetFeeByID(id int) (Fee, error)
		FilterFees(filter QueryFilter) ([]Fee, error)
		DeleteFee(id int) error

		GetPayment(studentID, feeID int) (Payment, error)
		// AddInstallment applies fn to the payment of (studentID, feeID), starting from an empty one
		// when there is none, and saves the result atomically. Nothing is saved when fn fails.
		AddInstallment(studentID, feeID int, fn func(p *Payment) error) (Payment, error)
		// FilterPayments returns payments of studentID and/or feeID; zero values match any.
		FilterPayments(studentID, feeID int) ([]Payment, error)
		DeletePaymentsByFee(feeID int) (int, error)
		DeletePaymentsByStudent(studentID int) (int, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		appName string
	}

	receiptData struct {
		StudentName string
		FeeType     string
		Installment float64
		PaidAmount  float64
		Amount      float64
		Status      Status
		ReceiptNo   string
		PaymentDate string
	}
)

func NewService(repo Repository, mailSvc core.EmailService, appName string) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, appName: appName}
}

func (svc *Service) Add(nf NewFee) (Fee, error) {
	return svc.repo.CreateFee(Fee{
		Class:   nf.Class,
		FeeType: nf.FeeType,
		Amount:  nf.Amount,
		DueDate: nf.DueDate,
	})
}

func (svc *Service) Get(id int) (Fee, error) {
	return svc.repo.GetFeeByID(id)
}

func (svc *Service) List(filter QueryFilter) ([]Fee, error) {
	return svc.repo.FilterFees(filter)
}

// Remove deletes the fee and every payment made towards it.
func (svc *Service) Remove(id int) error {
	if err := svc.repo.DeleteFee(id); err != nil {
		return err
	}
	if _, err := svc.repo.DeletePaymentsByFee(id); err != nil {
		return errors.Wrap(err, "deleting fee payments")
	}
	return nil
}

// StudentFees lists every fee of the student's class along with what was paid so far.
func (svc *Service) StudentFees(student directory.Student, filter ...QueryFilter) ([]Payment, error) {
	var qf QueryFilter
	if len(filter) > 0 {
		qf = filter[0]
	}
	qf.Class = student.Class

	fees, err := svc.repo.FilterFees(qf)
	if err != nil {
		return nil, errors.Wrap(err, "filtering fees")
	}
	payments := make([]Payment, 0, len(fees))
	for _, f := range fees {
		p, err := svc.repo.GetPayment(student.ID, f.ID)
		switch {
		case err == nil:
		case errors.Cause(err) == ErrPaymentNotFound:
			p = newPayment(student.ID, f)
		default:
			return nil, errors.Wrap(err, "getting payment")
		}
		payments = append(payments, refresh(p, f))
	}
	return payments, nil
}

// Collect adds an installment to the student's payment for a fee and mails a receipt to the parent.
func (svc *Service) Collect(student directory.Student, feeID int, np NewPayment) (Payment, error) {
	f, err := svc.repo.GetFeeByID(feeID)
	if err != nil {
		return Payment{}, err
	}
	if f.Class != student.Class {
		return Payment{}, core.NewFieldError("student_id", "student is not charged this fee")
	}

	p, err := svc.repo.AddInstallment(student.ID, f.ID, func(p *Payment) error {
		*p = refresh(*p, f)
		if np.Amount <= 0 || np.Amount > p.Balance() {
			msg := fmt.Sprintf("amount must be between 0 and the outstanding balance (%.2f)", p.Balance())
			return core.NewFieldError("amount", msg)
		}

		p.PaidAmount += np.Amount
		p.PaymentDate = np.PaymentDate
		if p.PaymentDate == "" {
			p.PaymentDate = nowFunc().Format(core.DateLayout)
		}
		p.ReceiptNo = np.ReceiptNo
		if p.ReceiptNo == "" {
			p.ReceiptNo = NewReceiptNo()
		}
		*p = refresh(*p, f)
		return nil
	})
	if err != nil {
		return Payment{}, errors.Wrap(err, "adding installment")
	}

	if student.ParentEmail != "" && svc.mailSvc != nil {
		svc.mailSvc.SendMessages(svc.receipt(student, p, np.Amount))
	}
	return p, nil
}

func (svc *Service) RemovePaymentsByStudent(studentID int) error {
	_, err := svc.repo.DeletePaymentsByStudent(studentID)
	return err
}

func (svc *Service) receipt(student directory.Student, p Payment, installment float64) *core.EmailMessage {
	to := mail.Address{Name: student.Parent, Address: student.ParentEmail}
	return &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      fmt.Sprintf("Payment receipt %s", p.ReceiptNo),
		TemplateName: "fee_receipt",
		TemplateData: receiptData{
			StudentName: student.Name,
			FeeType:     p.FeeType,
			Installment: installment,
			PaidAmount:  p.PaidAmount,
			Amount:      p.Amount,
			Status:      p.Status,
			ReceiptNo:   p.ReceiptNo,
			PaymentDate: p.PaymentDate,
		},
	}
}

// NewReceiptNo returns a fresh receipt number, e.g. R-1F0C9A2B.
func NewReceiptNo() string {
	return "R-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func newPayment(studentID int, f Fee) Payment {
	return Payment{StudentID: studentID, FeeID: f.ID}
}

// refresh copies the fee's terms onto p and derives its status.
func refresh(p Payment, f Fee) Payment {
	p.FeeType = f.FeeType
	p.Amount = f.Amount
	p.DueDate = f.DueDate
	p.Status = StatusOf(p.Amount, p.PaidAmount)
	return p
}

package dummydb

import (
	"github.com/trezcool/shule/core/fee"
)

type feeRepository struct {
	db *DB
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) fee.Repository {
	return &feeRepository{db: db}
}

func (repo *feeRepository) CreateFee(f fee.Fee) (fee.Fee, error) {
	return repo.db.fees.insert(f), nil
}

func (repo *feeRepository) GetFeeByID(id int) (fee.Fee, error) {
	if f, ok := repo.db.fees.get(id); ok {
		return f, nil
	}
	return fee.Fee{}, fee.ErrNotFound
}

func (repo *feeRepository) FilterFees(filter fee.QueryFilter) ([]fee.Fee, error) {
	return repo.db.fees.filter(filter.Match), nil
}

func (repo *feeRepository) DeleteFee(id int) error {
	if !repo.db.fees.delete(id) {
		return fee.ErrNotFound
	}
	return nil
}

func (repo *feeRepository) GetPayment(studentID, feeID int) (fee.Payment, error) {
	if p, ok := repo.db.payments.find(func(p fee.Payment) bool {
		return p.StudentID == studentID && p.FeeID == feeID
	}); ok {
		return p, nil
	}
	return fee.Payment{}, fee.ErrPaymentNotFound
}

func (repo *feeRepository) AddInstallment(studentID, feeID int, fn func(p *fee.Payment) error) (fee.Payment, error) {
	match := func(p fee.Payment) bool { return p.StudentID == studentID && p.FeeID == feeID }
	return repo.db.payments.apply(match, fee.Payment{StudentID: studentID, FeeID: feeID}, func(p *fee.Payment) error {
		if err := fn(p); err != nil {
			return err
		}
		p.StudentID, p.FeeID = studentID, feeID
		return nil
	})
}

func (repo *feeRepository) FilterPayments(studentID, feeID int) ([]fee.Payment, error) {
	return repo.db.payments.filter(func(p fee.Payment) bool {
		return (studentID == 0 || p.StudentID == studentID) && (feeID == 0 || p.FeeID == feeID)
	}), nil
}

func (repo *feeRepository) DeletePaymentsByFee(feeID int) (int, error) {
	return repo.db.payments.deleteWhere(func(p fee.Payment) bool { return p.FeeID == feeID }), nil
}

func (repo *feeRepository) DeletePaymentsByStudent(studentID int) (int, error) {
	return repo.db.payments.deleteWhere(func(p fee.Payment) bool { return p.StudentID == studentID }), nil
}

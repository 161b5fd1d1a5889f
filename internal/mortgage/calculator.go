// Package mortgage computes fixed monthly installments for fully-amortizing
// home loans, as shown in the listing detail page's KPR simulation.
package mortgage

import (
	"errors"
	"math"
)

var (
	// ErrInvalidPrice indicates a non-positive property price.
	ErrInvalidPrice = errors.New("mortgage: price must be greater than zero")
	// ErrInvalidDownPayment indicates a down payment outside 0-100 percent.
	ErrInvalidDownPayment = errors.New("mortgage: down payment percent must be between 0 and 100")
	// ErrInvalidRate indicates a negative annual interest rate.
	ErrInvalidRate = errors.New("mortgage: interest rate must not be negative")
	// ErrInvalidTenor indicates a non-positive loan tenor.
	ErrInvalidTenor = errors.New("mortgage: tenor must be at least one year")
)

// Input describes one installment estimate request. Price is in whole
// currency units; percentages are on a 0-100 scale.
type Input struct {
	Price              int64   `json:"price"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	TenorYears         int     `json:"tenor_years"`
}

// Estimate is the result of a mortgage simulation, in whole currency units.
type Estimate struct {
	DownPayment    int64 `json:"down_payment"`
	LoanAmount     int64 `json:"loan_amount"`
	Months         int   `json:"months"`
	MonthlyPayment int64 `json:"monthly_payment"`
}

// Validate rejects precondition violations before any computation, so a bad
// tenor can never reach the division below and surface as NaN or Inf.
func (in Input) Validate() error {
	if in.Price <= 0 {
		return ErrInvalidPrice
	}
	if in.DownPaymentPercent < 0 || in.DownPaymentPercent > 100 {
		return ErrInvalidDownPayment
	}
	if in.AnnualRatePercent < 0 {
		return ErrInvalidRate
	}
	if in.TenorYears <= 0 {
		return ErrInvalidTenor
	}
	return nil
}

// Calculate computes the fixed monthly payment using the standard
// amortization formula, rounding half-up to the nearest whole currency unit.
// A zero interest rate degenerates to straight principal division.
func Calculate(in Input) (Estimate, error) {
	if err := in.Validate(); err != nil {
		return Estimate{}, err
	}

	price := float64(in.Price)
	downPayment := price * in.DownPaymentPercent / 100
	loanAmount := price - downPayment
	monthlyRate := in.AnnualRatePercent / 100 / 12
	months := in.TenorYears * 12

	var payment float64
	if monthlyRate == 0 {
		payment = loanAmount / float64(months)
	} else {
		payment = loanAmount * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(months)))
	}

	return Estimate{
		DownPayment:    int64(math.Round(downPayment)),
		LoanAmount:     int64(math.Round(loanAmount)),
		Months:         months,
		MonthlyPayment: int64(math.Round(payment)),
	}, nil
}

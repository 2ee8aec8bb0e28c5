// Package derived computes accounts whose values follow from other resolved
// accounts, such as the interest margin ratio.
package derived

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Aashish23092/finstatement-extractor/catalog"
	"github.com/Aashish23092/finstatement-extractor/resolver"
	"github.com/Aashish23092/finstatement-extractor/utils"
)

// SourceComputed tags every derived entry.
const SourceComputed = "computed"

// ErrFormulaSkip marks a formula that was not applied.
var ErrFormulaSkip = errors.New("formula skipped")

type SkipReason string

const (
	ReasonOperandMissing    SkipReason = "operand_missing"
	ReasonOperandNotNumeric SkipReason = "operand_not_numeric"
	ReasonNonPositiveBase   SkipReason = "non_positive_base"
	ReasonAlreadyResolved   SkipReason = "already_resolved"
)

// SkipError explains why a formula left its target unresolved.
type SkipError struct {
	TargetID int
	Reason   SkipReason
	Err      error
}

func (e *SkipError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("derived id %d skipped (%s): %v", e.TargetID, e.Reason, e.Err)
	}
	return fmt.Sprintf("derived id %d skipped (%s)", e.TargetID, e.Reason)
}

func (e *SkipError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormulaSkip, e.Err}
	}
	return []error{ErrFormulaSkip}
}

// Formula computes TargetID from the parsed values of Operands.
type Formula struct {
	TargetID int
	Name     string
	Operands []int
	Compute  func(values map[int]decimal.Decimal) (string, error)
}

// Outcome reports what happened to one formula.
type Outcome struct {
	TargetID int
	Value    string
	Err      error
}

func (o Outcome) Applied() bool { return o.Err == nil }

// Formulas returns the built-in formulas in application order.
func Formulas() []Formula {
	return []Formula{
		{
			TargetID: catalog.IDInterestMargin,
			Name:     "(이자수익-이자비용)/이자수익×100",
			Operands: []int{catalog.IDInterestIncome, catalog.IDInterestExpense},
			Compute:  interestMargin,
		},
		{
			TargetID: catalog.IDNetChargeOff,
			Name:     "대출채권매각손실(B)-대출채권매각이익(A)",
			Operands: []int{catalog.IDLoanSaleLoss, catalog.IDLoanSaleGain},
			Compute:  netChargeOff,
		},
	}
}

var hundred = decimal.NewFromInt(100)

func interestMargin(v map[int]decimal.Decimal) (string, error) {
	income, expense := v[catalog.IDInterestIncome], v[catalog.IDInterestExpense]
	if !income.IsPositive() {
		return "", &SkipError{TargetID: catalog.IDInterestMargin, Reason: ReasonNonPositiveBase}
	}
	return income.Sub(expense).Div(income).Mul(hundred).StringFixed(2), nil
}

func netChargeOff(v map[int]decimal.Decimal) (string, error) {
	return utils.FormatGrouped(v[catalog.IDLoanSaleLoss].Sub(v[catalog.IDLoanSaleGain])), nil
}

type Engine struct {
	formulas []Formula
	log      zerolog.Logger
}

func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{formulas: Formulas(), log: log}
}

// Apply runs every formula against result, writing the targets it can
// compute. It never overwrites an existing entry.
func (e *Engine) Apply(result *resolver.ExtractionResult) []Outcome {
	outcomes := make([]Outcome, 0, len(e.formulas))
	for _, f := range e.formulas {
		o := e.apply(result, f)
		if o.Err != nil {
			e.log.Debug().Err(o.Err).Int("account_id", f.TargetID).Msg("derived metric skipped")
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (e *Engine) apply(result *resolver.ExtractionResult, f Formula) Outcome {
	skip := func(reason SkipReason, err error) Outcome {
		return Outcome{TargetID: f.TargetID, Err: &SkipError{TargetID: f.TargetID, Reason: reason, Err: err}}
	}

	if result.IsResolved(f.TargetID) {
		return skip(ReasonAlreadyResolved, nil)
	}

	values := make(map[int]decimal.Decimal, len(f.Operands))
	for _, id := range f.Operands {
		entry, ok := result.Get(id)
		if !ok {
			return skip(ReasonOperandMissing, fmt.Errorf("account %d unresolved", id))
		}
		d, err := utils.ParseAmount(entry.Value)
		if err != nil {
			return skip(ReasonOperandNotNumeric, err)
		}
		values[id] = d
	}

	value, err := f.Compute(values)
	if err != nil {
		return Outcome{TargetID: f.TargetID, Err: err}
	}

	err = result.Resolve(resolver.ResolvedEntry{
		AccountID:    f.TargetID,
		Value:        value,
		MatchedLabel: f.Name,
		Confidence:   1.0,
		Source:       SourceComputed,
	})
	if err != nil {
		return Outcome{TargetID: f.TargetID, Err: err}
	}
	return Outcome{TargetID: f.TargetID, Value: value}
}

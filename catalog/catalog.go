package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrAccountNotFound is returned when an id outside the catalog is requested.
var ErrAccountNotFound = errors.New("account not found")

type Category string

const (
	CategoryBasic           Category = "기본정보"
	CategoryBalanceSheet    Category = "재무상태표"
	CategoryIncomeStatement Category = "손익계산서"
	CategorySecurities      Category = "유가증권"
	CategoryLoanProvision   Category = "대출충당금"
	CategoryExpense         Category = "경비"
	CategoryPersonnel       Category = "인건비"
	CategoryKeyRatio        Category = "경영지표"
)

// Categories lists every category in catalog declaration order.
var Categories = []Category{
	CategoryBasic,
	CategoryBalanceSheet,
	CategoryIncomeStatement,
	CategorySecurities,
	CategoryLoanProvision,
	CategoryExpense,
	CategoryPersonnel,
	CategoryKeyRatio,
}

// AccountDefinition is one standardized line item.
type AccountDefinition struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Category Category `json:"category"`
}

// Labels returns the canonical name followed by every alias.
func (a AccountDefinition) Labels() []string {
	labels := make([]string, 0, len(a.Aliases)+1)
	labels = append(labels, a.Name)
	return append(labels, a.Aliases...)
}

func (a AccountDefinition) clone() AccountDefinition {
	a.Aliases = slices.Clone(a.Aliases)
	return a
}

var byID = func() map[int]int {
	index := make(map[int]int, len(accounts))
	for i, a := range accounts {
		if _, dup := index[a.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate account id %d", a.ID))
		}
		index[a.ID] = i
	}
	return index
}()

// All returns every account in declaration order. Callers get copies.
func All() []AccountDefinition {
	out := make([]AccountDefinition, len(accounts))
	for i, a := range accounts {
		out[i] = a.clone()
	}
	return out
}

// Size is the number of accounts in the catalog.
func Size() int {
	return len(accounts)
}

// ByID looks up one account.
func ByID(id int) (AccountDefinition, error) {
	i, ok := byID[id]
	if !ok {
		return AccountDefinition{}, fmt.Errorf("catalog: id %d: %w", id, ErrAccountNotFound)
	}
	return accounts[i].clone(), nil
}

// ByCategory returns the accounts of one category in declaration order.
func ByCategory(c Category) []AccountDefinition {
	var out []AccountDefinition
	for _, a := range accounts {
		if a.Category == c {
			out = append(out, a.clone())
		}
	}
	return out
}

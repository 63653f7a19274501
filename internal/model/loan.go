package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Column names of the loan application dataset, in file order.
const (
	ColLoanID            = "Loan_ID"
	ColGender            = "Gender"
	ColMarried           = "Married"
	ColDependents        = "Dependents"
	ColEducation         = "Education"
	ColSelfEmployed      = "Self_Employed"
	ColApplicantIncome   = "ApplicantIncome"
	ColCoapplicantIncome = "CoapplicantIncome"
	ColLoanAmount        = "LoanAmount"
	ColLoanAmountTerm    = "Loan_Amount_Term"
	ColCreditHistory     = "Credit_History"
	ColPropertyArea      = "Property_Area"
	ColLoanStatus        = "Loan_Status"
	ColFICOScore         = "FICO_Score"
)

// Enumerations of the categorical columns.
var (
	Genders        = []string{"Male", "Female"}
	YesNo          = []string{"Yes", "No"}
	DependentsBins = []string{"0", "1", "2", "3+"}
	Educations     = []string{"None", "High School", "Some College", "College", "Graduate"}
	PropertyAreas  = []string{"Urban", "Semiurban", "Rural"}
	LoanStatuses   = []string{"Y", "N"}
)

// Discrete numeric sets and ranges.
var (
	LoanTerms       = []int64{120, 240, 360}
	CreditHistory   = []int64{0, 1}
	IncomeRange     = [2]int64{9000, 235000}
	LoanAmountRange = [2]int64{500, 45000}
	FICORange       = [2]int64{300, 850}
)

// LoanIDPrefix is prepended to the zero-padded sequence number of every identifier.
const LoanIDPrefix = "LP"

var loanIDPattern = regexp.MustCompile(`^LP\d{4,}$`)

// LoanID formats the identifier of the n-th record (1-based).
func LoanID(n int) string {
	return fmt.Sprintf("%s%04d", LoanIDPrefix, n)
}

// LoanApplication is one synthetic loan application.
type LoanApplication struct {
	LoanID            string
	Gender            string
	Married           string
	Dependents        string
	Education         string
	SelfEmployed      string
	ApplicantIncome   int64
	CoapplicantIncome int64
	LoanAmount        int64
	LoanAmountTerm    int64
	CreditHistory     int64
	PropertyArea      string
	LoanStatus        string
	FICOScore         int64
}

// Cells returns the record as a table row in LoanColumns order.
func (a LoanApplication) Cells() []Cell {
	return []Cell{
		NewCell(a.LoanID),
		NewCell(a.Gender),
		NewCell(a.Married),
		NewCell(a.Dependents),
		NewCell(a.Education),
		NewCell(a.SelfEmployed),
		NewCell(strconv.FormatInt(a.ApplicantIncome, 10)),
		NewCell(strconv.FormatInt(a.CoapplicantIncome, 10)),
		NewCell(strconv.FormatInt(a.LoanAmount, 10)),
		NewCell(strconv.FormatInt(a.LoanAmountTerm, 10)),
		NewCell(strconv.FormatInt(a.CreditHistory, 10)),
		NewCell(a.PropertyArea),
		NewCell(a.LoanStatus),
		NewCell(strconv.FormatInt(a.FICOScore, 10)),
	}
}

// LoanColumns returns the 14 column names in file order.
func LoanColumns() []string {
	return LoanSchema().Columns()
}

// NewLoanTable builds a table from records.
func NewLoanTable(records []LoanApplication) (*Table, error) {
	t, err := NewTable(LoanColumns()...)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if err := t.AppendRow(records[i].Cells()); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return t, nil
}

// LoanSchema returns the declared schema of the loan application dataset.
func LoanSchema() *Schema {
	return NewSchema(
		ColumnSpec{Name: ColLoanID, Kind: KindString, Pattern: loanIDPattern, Unique: true},
		ColumnSpec{Name: ColGender, Kind: KindString, Enum: Genders},
		ColumnSpec{Name: ColMarried, Kind: KindString, Enum: YesNo},
		ColumnSpec{Name: ColDependents, Kind: KindString, Enum: DependentsBins},
		ColumnSpec{Name: ColEducation, Kind: KindString, Enum: Educations},
		ColumnSpec{Name: ColSelfEmployed, Kind: KindString, Enum: YesNo},
		ColumnSpec{Name: ColApplicantIncome, Kind: KindInt, Min: IncomeRange[0], Max: IncomeRange[1], HasRange: true},
		ColumnSpec{Name: ColCoapplicantIncome, Kind: KindInt, Min: IncomeRange[0], Max: IncomeRange[1], HasRange: true},
		ColumnSpec{Name: ColLoanAmount, Kind: KindInt, Min: LoanAmountRange[0], Max: LoanAmountRange[1], HasRange: true},
		ColumnSpec{Name: ColLoanAmountTerm, Kind: KindInt, Allowed: LoanTerms},
		ColumnSpec{Name: ColCreditHistory, Kind: KindInt, Allowed: CreditHistory},
		ColumnSpec{Name: ColPropertyArea, Kind: KindString, Enum: PropertyAreas},
		ColumnSpec{Name: ColLoanStatus, Kind: KindString, Enum: LoanStatuses},
		ColumnSpec{Name: ColFICOScore, Kind: KindInt, Min: FICORange[0], Max: FICORange[1], HasRange: true},
	)
}

// DemographicColumns are the columns checked by the missing-value check.
func DemographicColumns() []string {
	return []string{ColGender, ColMarried, ColDependents, ColEducation, ColSelfEmployed}
}

// Package generator produces synthetic loan application records.
//
// Every column is drawn independently and uniformly from the domain declared in
// model.LoanSchema. The draws are made column by column: all values of one column
// are drawn before the first value of the next column. Together with a seeded
// PCG source this makes the output a pure function of (seed, record count).
//
// Design decision: We use math/rand/v2 with an explicit PCG source rather than the
// global generator. The global source is randomly seeded since Go 1.20, which would
// break the requirement that the same seed reproduces the same file byte for byte.
package generator

package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"15/03/2024"`), &d)
	assert.Error(t, err)
}

func TestDate_NullableFieldInLoan(t *testing.T) {
	loan := Loan{
		ID:       1,
		LoanDate: NewDate(2024, time.January, 2),
	}

	data, err := json.Marshal(loan)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"loanDate":"2024-01-02"`)
	assert.Contains(t, string(data), `"returnDate":null`)

	rd := NewDate(2024, time.February, 3)
	loan.ReturnDate = &rd

	data, err = json.Marshal(loan)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"returnDate":"2024-02-03"`)
}

func TestDate_ScanVariants(t *testing.T) {
	want := NewDate(2023, time.December, 31)

	var fromTime Date
	require.NoError(t, fromTime.Scan(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, want.Equal(fromTime))

	var fromString Date
	require.NoError(t, fromString.Scan("2023-12-31"))
	assert.True(t, want.Equal(fromString))

	var fromBytes Date
	require.NoError(t, fromBytes.Scan([]byte("2023-12-31T00:00:00Z")))
	assert.True(t, want.Equal(fromBytes))

	var fromInt Date
	assert.Error(t, fromInt.Scan(12345))
}

func TestLoan_Returned(t *testing.T) {
	loan := Loan{LoanDate: Today()}
	assert.False(t, loan.Returned())

	rd := Today()
	loan.ReturnDate = &rd
	assert.True(t, loan.Returned())
}

func TestBook_Available(t *testing.T) {
	assert.True(t, (&Book{Stock: 1}).Available())
	assert.False(t, (&Book{Stock: 0}).Available())
}

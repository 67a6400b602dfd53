package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicStatement(t *testing.T) {
	csv := "Date,Merchant,Amount,Category\n" +
		"2024-02-01,Store,-25.50,Shopping\n" +
		"2024-02-03,Cafe,4.20,\n"

	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Empty(t, res.Skipped)

	// Negative charge normalized to absolute value.
	assert.Equal(t, Row{Date: "2024-02-01", Merchant: "Store", Amount: 25.50, Category: "Shopping"}, res.Rows[0])
	// Empty category falls back to the default.
	assert.Equal(t, "Miscellaneous", res.Rows[1].Category)
}

func TestParseHeaderFallbacks(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"lowercase headers", "date,merchant,amount\n2024-01-01,Shop,10\n"},
		{"description instead of merchant", "Date,Description,Amount\n2024-01-01,Shop,10\n"},
		{"mixed case", "DATE,MERCHANT,AMOUNT\n2024-01-01,Shop,10\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tc.csv))
			require.NoError(t, err)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, "Shop", res.Rows[0].Merchant)
			assert.Equal(t, 10.0, res.Rows[0].Amount)
		})
	}
}

func TestParseBOMHeader(t *testing.T) {
	csv := "\ufeffDate,Merchant,Amount\n2024-01-01,Shop,10\n"
	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "2024-01-01", res.Rows[0].Date)
}

func TestParseAmountNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"₹2,500", 2500},
		{"-25.50", 25.50},
		{"€ 12.00", 12},
		{"", 0},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	csv := "Date,Merchant,Amount\n" +
		"2024-01-01,Good,10\n" +
		"2024-01-02,Bad,notanumber\n" +
		"2024-01-03,AlsoGood,20\n"

	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Line)
}

func TestParseEmptyAndHeaderlessFiles(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse(strings.NewReader("Foo,Bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestParseMissingAmountColumnDefaultsToZero(t *testing.T) {
	csv := "Date,Merchant\n2024-01-01,Shop\n"
	res, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Zero(t, res.Rows[0].Amount)
}

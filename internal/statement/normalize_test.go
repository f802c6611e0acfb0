package statement

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerfold-dev/ledgerfold/internal/logger"
	"github.com/ledgerfold-dev/ledgerfold/internal/model"
)

func testNormalizer(filters ...string) *Normalizer {
	return NewNormalizer(",", filters, logger.NewWithWriter(io.Discard))
}

func TestNormalize_EndToEnd(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,-4.50",
		`01/03/2024,PAYMENT RECEIVED,"+120.00"`,
	}
	st, err := testNormalizer("payment received").Normalize("a.csv", lines)
	require.NoError(t, err)

	assert.Equal(t, model.ColumnRoles{Date: 0, Money: 2, Description: 1}, st.Roles)
	assert.Equal(t, 0, st.HeaderLines)

	// Only the debit survives; its mean sign is negative, so no flip.
	assert.Equal(t, 1, st.Sign)
	require.Len(t, st.Transactions, 1)
	txn := st.Transactions[0]
	assert.Equal(t, "Coffee Shop", txn.Description)
	assert.Equal(t, "4.50", txn.Amount.StringFixed(2))
	assert.Equal(t, "2024-01-02", txn.Date.Format("2006-01-02"))
	// The span covers the filtered row's date too, so the ledger gets an
	// empty placeholder for it.
	assert.Equal(t, "2024-01-02", st.From.Format("2006-01-02"))
	assert.Equal(t, "2024-01-03", st.To.Format("2006-01-02"))
}

func TestNormalize_SignFlipWhenDebitsPositive(t *testing.T) {
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, fmt.Sprintf("01/%02d/2024,Merchant %c,%d.00", i+2, 'A'+i, (i+1)*3))
	}
	for i := 0; i < 3; i++ {
		lines = append(lines, fmt.Sprintf("01/%02d/2024,Refund %c,-%d.00", i+9, 'A'+i, i+5))
	}
	st, err := testNormalizer().Normalize("a.csv", lines)
	require.NoError(t, err)

	assert.Equal(t, -1, st.Sign)
	// A raw positive debit ends up positive in ledger convention.
	assert.Equal(t, "3.00", st.Transactions[0].Amount.StringFixed(2))
	// A raw negative credit ends up negative.
	assert.Equal(t, "-5.00", st.Transactions[7].Amount.StringFixed(2))
}

func TestNormalize_SignKeptWhenDebitsNegative(t *testing.T) {
	var lines []string
	for i := 0; i < 7; i++ {
		lines = append(lines, fmt.Sprintf("01/%02d/2024,Merchant %c,-%d.00", i+2, 'A'+i, (i+1)*3))
	}
	for i := 0; i < 3; i++ {
		lines = append(lines, fmt.Sprintf("01/%02d/2024,Refund %c,%d.00", i+9, 'A'+i, i+5))
	}
	st, err := testNormalizer().Normalize("a.csv", lines)
	require.NoError(t, err)

	assert.Equal(t, 1, st.Sign)
	assert.Equal(t, "3.00", st.Transactions[0].Amount.StringFixed(2))
}

func TestNormalize_SkipsHeaderLines(t *testing.T) {
	lines := []string{
		"Statement for account 1234",
		"Date,Description,Amount",
		"01/02/2024,Coffee Shop,-4.50",
	}
	st, err := testNormalizer().Normalize("a.csv", lines)
	require.NoError(t, err)
	assert.Equal(t, 2, st.HeaderLines)
	require.Len(t, st.Transactions, 1)
}

func TestNormalize_FilterIsCaseInsensitive(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,-4.50",
		"01/03/2024,Payment Thank You - Web,120.00",
	}
	st, err := testNormalizer("PAYMENT THANK YOU - WEB").Normalize("a.csv", lines)
	require.NoError(t, err)
	require.Len(t, st.Transactions, 1)
	assert.Equal(t, "Coffee Shop", st.Transactions[0].Description)
}

func TestNormalize_FilterIdempotent(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,-4.50",
		"01/03/2024,PAYMENT RECEIVED,120.00",
		"01/04/2024,Grocery,-30.00",
	}
	n := testNormalizer("payment received")
	st, err := n.Normalize("a.csv", lines)
	require.NoError(t, err)

	// Filtering an already-filtered sequence changes nothing.
	for _, txn := range st.Transactions {
		assert.False(t, n.isNoise(txn.Description))
	}
	require.Len(t, st.Transactions, 2)
}

func TestNormalize_DropsBlankAmountRows(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,1042.50,-4.50",
		"01/03/2024,Grocery Mart,1010.40,",
		"01/04/2024,Deli Lunch,1001.65,-8.75",
		"01/05/2024,Takeout Dinner,981.65,-20.00",
	}
	st, err := testNormalizer().Normalize("a.csv", lines)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Roles.Money)
	require.Len(t, st.Transactions, 3)
}

func TestNormalize_NoDateAnywhere(t *testing.T) {
	lines := []string{
		"Date,Description,Amount",
		"totals,,0",
	}
	_, err := testNormalizer().Normalize("a.csv", lines)
	var noDate *model.NoDateColumnError
	require.ErrorAs(t, err, &noDate)
}

func TestNormalize_MalformedRowAborts(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,-4.50",
		"01/03/2024,Deli, Downtown,-12.00",
		"01/04/2024,Grocery,-32.10",
	}
	_, err := testNormalizer().Normalize("a.csv", lines)
	var malformed *model.MalformedRowError
	require.ErrorAs(t, err, &malformed)
}

func TestNormalize_BadDateInDataRowIsFatal(t *testing.T) {
	lines := []string{
		"01/02/2024,Coffee Shop,-4.50",
		"not a date,Grocery,-32.10",
	}
	_, err := testNormalizer().Normalize("a.csv", lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "cannot parse date")
}

func TestSignConvention(t *testing.T) {
	pos := []float64{1, 2, 3, 4, 5, 6, 7, -1, -2, -3}
	assert.Equal(t, -1, signConvention(pos))

	neg := []float64{-1, -2, -3, -4, -5, -6, -7, 1, 2, 3}
	assert.Equal(t, 1, signConvention(neg))

	assert.Equal(t, 1, signConvention(nil))
	assert.Equal(t, 1, signConvention([]float64{1, -1}))
}

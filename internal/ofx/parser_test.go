package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>CAD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POS PURCHASE TIM HORTONS #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>HYDRO OTTAWA PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>-1500.00
<FITID>2024012501
<NAME>PAYMENT
<MEMO>MONTHLY RENT JANUARY
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>CAD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>XYZCORP RANDOM PURCHASE
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{name: "valid bank statement", ofxData: sampleBankOFX, expectedCount: 3},
		{name: "valid credit card statement", ofxData: sampleCreditCardOFX, expectedCount: 2},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser("alice")
			transactions, err := parser.ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser("alice").ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	tx1 := transactions[0]
	assert.Equal(t, "2024011501", tx1.ID)
	assert.Equal(t, "alice", tx1.UserID)
	assert.Equal(t, "TIM HORTONS #1234", tx1.Description)
	assert.Equal(t, -25.50, tx1.Amount)
	assert.Equal(t, "1234567890", tx1.AccountID)
	assert.Equal(t, 2024, tx1.Date.Year())
	assert.Equal(t, time.January, tx1.Date.Month())
	assert.Equal(t, 15, tx1.Date.Day())

	assert.Equal(t, "HYDRO OTTAWA PAYMENT", transactions[1].Description)
	assert.Equal(t, "MONTHLY RENT JANUARY", transactions[2].Description, "generic names fall back to the memo")
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser("bob").ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, "CC2024011001", transactions[0].ID)
	assert.Equal(t, "XYZCORP RANDOM PURCHASE", transactions[0].Description)
	assert.Equal(t, "4111111111111111", transactions[0].AccountID)
	assert.Equal(t, "NETFLIX.COM", transactions[1].Description)
	assert.Equal(t, -15.00, transactions[1].Amount)
}

func bankStatement(accountID string, rows ...string) string {
	return `<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>CAD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>` + accountID + `
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
` + strings.Join(rows, "\n") + `
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
`
}

func statementRow(fitID, name, amount string) string {
	return `<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>` + amount + `
<FITID>` + fitID + `
<NAME>` + name + `
</STMTTRN>`
}

func multiStatementOFX(statements ...string) string {
	header := sampleBankOFX[:strings.Index(sampleBankOFX, "<STMTTRNRS>")]
	return header + strings.Join(statements, "") + "</BANKMSGSRSV1>\n</OFX>"
}

func TestParseFile_Duplicates(t *testing.T) {
	t.Run("same FITID in different accounts", func(t *testing.T) {
		data := multiStatementOFX(
			bankStatement("AAA", statementRow("1", "TIM HORTONS", "-4.25")),
			bankStatement("BBB", statementRow("1", "HYDRO OTTAWA PAYMENT", "-120.00")),
		)

		transactions, err := NewParser("alice").ParseFile(context.Background(), strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "AAA", transactions[0].AccountID)
		assert.Equal(t, "TIM HORTONS", transactions[0].Description)
		assert.Equal(t, "BBB", transactions[1].AccountID)
		assert.Equal(t, "HYDRO OTTAWA PAYMENT", transactions[1].Description)
	})

	t.Run("same FITID repeated in one account", func(t *testing.T) {
		data := multiStatementOFX(
			bankStatement("AAA", statementRow("1", "TIM HORTONS", "-4.25")),
			bankStatement("AAA", statementRow("1", "TIM HORTONS", "-4.25"), statementRow("2", "RENT", "-1500.00")),
		)

		transactions, err := NewParser("alice").ParseFile(context.Background(), strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "1", transactions[0].ID)
		assert.Equal(t, "2", transactions[1].ID)
	})
}

func TestParseFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewParser("alice").ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{name: "remove POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, expected: "STARBUCKS"},
		{name: "remove french prefix", tx: ofxgo.Transaction{Name: "ACHAT PDV METRO PLUS"}, expected: "METRO PLUS"},
		{name: "remove posting date", tx: ofxgo.Transaction{Name: "01/15 NETFLIX.COM"}, expected: "NETFLIX.COM"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "NETFLIX.COM"}, expected: "NETFLIX.COM"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  AMAZON.CA  "}, expected: "AMAZON.CA"},
		{name: "memo for generic name", tx: ofxgo.Transaction{Name: "DEBIT", Memo: "ENBRIDGE GAS"}, expected: "ENBRIDGE GAS"},
		{name: "prefix in lower case", tx: ofxgo.Transaction{Name: "pos purchase Tim Hortons"}, expected: "Tim Hortons"},
		{name: "accented name kept whole", tx: ofxgo.Transaction{Name: "ÉPICERIE POS PURCHASE"}, expected: "ÉPICERIE POS PURCHASE"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "POS", Payee: &ofxgo.Payee{Name: "SHOPPERS DRUG MART"}}, expected: "SHOPPERS DRUG MART"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, describe(tt.tx))
		})
	}
}

func TestConvertTransaction_GeneratesStableID(t *testing.T) {
	parser := NewParser("alice")
	ofxTx := ofxgo.Transaction{
		Name:     "TIMHORT 123 MAIN ST",
		DtPosted: ofxgo.Date{Time: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)},
	}

	first := parser.convertTransaction(ofxTx, "123")
	second := parser.convertTransaction(ofxTx, "123")
	require.NotEmpty(t, first.ID)
	_, err := uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-importing a row yields the same ID")

	other := parser.convertTransaction(ofxTx, "456")
	assert.NotEqual(t, first.ID, other.ID)
}

func TestTransactionHash(t *testing.T) {
	tx1 := model.Transaction{
		ID:          "TX001",
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "TIM HORTONS",
		Amount:      -2.50,
		AccountID:   "123456",
	}
	tx2 := tx1
	tx2.ID = "TX002"
	assert.Equal(t, tx1.GenerateHash(), tx2.GenerateHash())

	tx3 := tx1
	tx3.Amount = -3.00
	assert.NotEqual(t, tx1.GenerateHash(), tx3.GenerateHash())

	tx4 := tx1
	tx4.Date = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t, tx1.GenerateHash(), tx4.GenerateHash())
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser("alice")

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)
}

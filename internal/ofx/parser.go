// Package ofx reads OFX/QFX bank and credit card statements into
// transactions ready for classification.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/autocat/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags on their own line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement rows without a FITID get an ID derived from their content.
var generatedIDNamespace = uuid.MustParse("6f0b7a84-3b0c-4d55-9a55-6c1d1f4e2a10")

// Noise some banks prepend to card purchases.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"ACHAT PDV ",
	"PAIEMENT DIRECT ",
}

// Parser converts statements into transactions owned by one user.
type Parser struct {
	userID string
}

// NewParser creates a parser that stamps userID on every transaction.
func NewParser(userID string) *Parser {
	return &Parser{userID: userID}
}

// preprocess fixes common formatting issues in OFX files.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func parseResponse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile returns every bank and credit card transaction in the file, in
// statement order. A FITID repeated within the same account is returned once;
// rows without a FITID are never merged.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := parseResponse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	seen := make(map[string]bool)
	add := func(list *ofxgo.TransactionList, accountID string) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			tx := p.convertTransaction(ofxTx, accountID)
			if fitID := string(ofxTx.FiTID); fitID != "" {
				key := accountID + "\x00" + fitID
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			transactions = append(transactions, tx)
		}
	}

	var bankStmts, ccStmts int
	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			add(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			add(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction converts an OFX transaction to our model.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	tx := model.Transaction{
		ID:          string(ofxTx.FiTID),
		UserID:      p.userID,
		Date:        ofxTx.DtPosted.Time,
		Description: describe(ofxTx),
		Amount:      amount,
		AccountID:   accountID,
	}
	if tx.ID == "" {
		tx.ID = uuid.NewSHA1(generatedIDNamespace, []byte(tx.GenerateHash())).String()
	}
	return tx
}

// describe picks the most informative description the bank supplied.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && isGenericDescription(name) {
		name = memo
	}

	for _, prefix := range descriptionPrefixes {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	// Leading MM/DD posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE", "ACHAT", "PAIEMENT":
		return true
	}
	return false
}

// GetAccounts lists the account IDs present in the file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := parseResponse(reader)
	if err != nil {
		return nil, err
	}

	var accounts []string
	seen := make(map[string]bool)
	addAccount := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			addAccount(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			addAccount(string(stmt.CCAcctFrom.AcctID))
		}
	}
	return accounts, nil
}

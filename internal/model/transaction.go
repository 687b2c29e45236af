package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is the record handed to the engine by the host application.
type Transaction struct {
	Date        time.Time
	ID          string
	UserID      string
	Description string // Raw bank description
	AccountID   string
	Amount      float64
}

// GenerateHash creates a stable hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

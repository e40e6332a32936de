package store

import (
	"go-ledger/models"
)

// Accounts holds in-memory accounts and their statement entries.
// It is not safe for concurrent use: only the accounts actor may touch it.
type Accounts struct {
	accounts map[string]*models.Account
	entries  map[string][]models.Entry
}

// NewAccounts returns an empty account store
func NewAccounts() *Accounts {
	return &Accounts{
		accounts: make(map[string]*models.Account),
		entries:  make(map[string][]models.Entry),
	}
}

// GetAccount retrieves an account by ID
func (s *Accounts) GetAccount(id string) (*models.Account, bool) {
	account, exists := s.accounts[id]
	return account, exists
}

// AddAccount adds an account to the store
func (s *Accounts) AddAccount(account *models.Account) {
	s.accounts[account.ID] = account
}

// AddEntry appends an entry to its account statement
func (s *Accounts) AddEntry(entry models.Entry) {
	s.entries[entry.AccountID] = append(s.entries[entry.AccountID], entry)
}

// GetEntries returns a copy of an account statement in append order
func (s *Accounts) GetEntries(accountID string) []models.Entry {
	entries := s.entries[accountID]
	out := make([]models.Entry, len(entries))
	copy(out, entries)
	return out
}

// Transfers holds in-memory transfer records.
// It is not safe for concurrent use: only the transfers actor may touch it.
type Transfers struct {
	transfers map[string]*models.Transfer
}

// NewTransfers returns an empty transfer store
func NewTransfers() *Transfers {
	return &Transfers{transfers: make(map[string]*models.Transfer)}
}

// GetTransfer retrieves a transfer by ID
func (s *Transfers) GetTransfer(id string) (*models.Transfer, bool) {
	transfer, exists := s.transfers[id]
	return transfer, exists
}

// AddTransfer adds a transfer to the store
func (s *Transfers) AddTransfer(transfer *models.Transfer) {
	s.transfers[transfer.ID] = transfer
}

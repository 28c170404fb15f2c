package ports

import "github.com/toolcube/toolcube/internal/core/domain"

// LedgerStore reads and writes the version ledger of a tool.
//
//go:generate go run go.uber.org/mock/mockgen -source=ledger_store.go -destination=mocks/mock_ledger_store.go -package=mocks
type LedgerStore interface {
	// Read loads the ledger at path, returning (nil, nil) when no file
	// exists.
	Read(path string) (domain.Ledger, error)

	// Write persists the ledger at path, creating parent directories as
	// needed.
	Write(path string, ledger domain.Ledger) error
}

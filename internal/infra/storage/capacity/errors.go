package capacity

import "errors"

var (
	ErrOverrideNotFound = errors.New("capacity.repository: override not found")
	ErrBuildQuery       = errors.New("capacity.repository: failed to build query")
	ErrExecQuery        = errors.New("capacity.repository: failed to execute query")
	ErrScanRow          = errors.New("capacity.repository: failed to scan row")
)

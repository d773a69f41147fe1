package business

import "errors"

var (
	ErrBusinessNotFound = errors.New("business.repository: business not found")

	ErrBuildQuery = errors.New("business.repository: failed to build query")
	ErrExecQuery  = errors.New("business.repository: failed to execute query")
	ErrScanRow    = errors.New("business.repository: failed to scan row")
)

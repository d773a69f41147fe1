package serviceoffering

import "errors"

var (
	ErrBuildQuery = errors.New("serviceoffering.repository: failed to build query")
	ErrExecQuery  = errors.New("serviceoffering.repository: failed to execute query")
	ErrScanRow    = errors.New("serviceoffering.repository: failed to scan row")
)

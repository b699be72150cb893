//go:build !cgo_sqlite

package collection

import (
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

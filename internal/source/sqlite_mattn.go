//go:build cgo

package source

// Blank-imports the cgo-based mattn/go-sqlite3 driver under the
// "sqlite3" name, alongside modernc's pure-Go one, for callers that
// already carry a cgo toolchain and want its fuller feature set
// (sentra's internal/database offers both for the same reason).
import _ "github.com/mattn/go-sqlite3"

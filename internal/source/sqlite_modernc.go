package source

// Blank-imports the pure-Go modernc.org/sqlite driver so a caller can
// open "sqlite" DSNs without a cgo toolchain, the way sentra's
// internal/database registers it as its default embedded-database
// driver.
import _ "modernc.org/sqlite"

package source

// Blank-imports go-sql-driver/mysql so a caller can open a "mysql" DSN,
// mirroring sentra's internal/database MySQL driver registration.
import _ "github.com/go-sql-driver/mysql"

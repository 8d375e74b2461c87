package source

// Blank-imports denisenkom/go-mssqldb so a caller can open a
// "sqlserver" DSN, mirroring sentra's internal/database SQL Server
// driver registration.
import _ "github.com/denisenkom/go-mssqldb"

package source

// Blank-imports lib/pq so a caller can open a "postgres" DSN, mirroring
// sentra's internal/database Postgres driver registration.
import _ "github.com/lib/pq"

package config

const (
	// EngineSQLite stores everything in a local SQLite file.
	EngineSQLite = "sqlite"
	// EngineMySQL connects to a MySQL or MariaDB server.
	EngineMySQL = "mysql"
	// EnginePostgres connects to a PostgreSQL server.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite database file
	GormEngine string `validate:"omitempty,oneof=sqlite mysql postgres"`
}

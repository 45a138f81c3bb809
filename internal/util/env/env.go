package env_utils

type EnvMode string

const (
	EnvModeDevelopment EnvMode = "development"
	EnvModeProduction  EnvMode = "production"
)

func (m EnvMode) IsValid() bool {
	switch m {
	case EnvModeDevelopment, EnvModeProduction:
		return true
	default:
		return false
	}
}

type DatabaseDriver string

const (
	DatabaseDriverPostgres DatabaseDriver = "postgres"
	DatabaseDriverSqlite   DatabaseDriver = "sqlite"
)

func (d DatabaseDriver) IsValid() bool {
	switch d {
	case DatabaseDriverPostgres, DatabaseDriverSqlite:
		return true
	default:
		return false
	}
}

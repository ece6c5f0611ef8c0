package config

const (
	EnvPrefix = "KANDANG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "KANDANG_DB_DSN"
	EnvDBHost = "KANDANG_DB_HOST"
	EnvDBUser = "KANDANG_DB_USER"
	EnvDBName = "KANDANG_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is the envconfig prefix shared by all services.
const EnvPrefix = "superadmin"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SUPERADMIN_DB_DSN"
	EnvDBHost = "SUPERADMIN_DB_HOST"
	EnvDBUser = "SUPERADMIN_DB_USER"
	EnvDBName = "SUPERADMIN_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

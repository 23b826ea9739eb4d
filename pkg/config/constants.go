package config

const (
	EnvPrefix = "parksense"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

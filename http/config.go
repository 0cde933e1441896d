package http

import "github.com/thanhminhmr/go-errtrace/configuration"

type ServerConfig struct {
	Port uint16 `env:"HTTP_SERVER_PORT" validate:"required"`
}

type ServerExtraConfig struct {
	ReadHeaderTimeout uint32 `env:"HTTP_SERVER_READ_HEADER_TIMEOUT" validate:"min=0,max=60"`
	IdleTimeout       uint32 `env:"HTTP_SERVER_IDLE_TIMEOUT" validate:"min=0,max=3600"`
	MaxHeaderBytes    uint32 `env:"HTTP_SERVER_MAX_HEADER_BYTES" validate:"min=0,max=65536"`
}

func init() {
	configuration.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5")
	configuration.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60")
	configuration.SetDefault("HTTP_SERVER_MAX_HEADER_BYTES", "4096")
}

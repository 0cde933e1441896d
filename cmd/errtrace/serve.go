package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/thanhminhmr/go-errtrace/configuration"
	"github.com/thanhminhmr/go-errtrace/exception"
	server "github.com/thanhminhmr/go-errtrace/http"
	"github.com/thanhminhmr/go-errtrace/log"
	"go.uber.org/fx"
)

var (
	servePort    uint16
	serveConsole bool
	serveCmd     = &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo HTTP server that logs recovered panics",
		Long: `serve starts an HTTP server whose handlers panic on /panic and fail on
/error. Recovered panics are logged with their stack trace and stack hash.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().Uint16Var(&servePort, "port", 0, "listen port, overrides HTTP_SERVER_PORT")
	serveCmd.Flags().BoolVar(&serveConsole, "console", false, "log human readable lines to stderr instead of JSON")
}

func runServe(cmd *cobra.Command, _ []string) error {
	serverConfig := fx.Provide(configuration.Loader(&server.ServerConfig{}))
	if cmd.Flags().Changed("port") {
		serverConfig = fx.Supply(&server.ServerConfig{Port: servePort})
	}
	logger := fx.Options()
	if serveConsole {
		logger = fx.Decorate(consoleLogger)
	}
	app := fx.New(
		log.Module,
		logger,
		serverConfig,
		fx.Provide(
			configuration.Loader(&server.ServerExtraConfig{}),
			server.NewServer,
		),
		fx.Supply(evaluators),
		fx.Invoke(registerRoutes),
	)
	if err := app.Err(); err != nil {
		return err
	}
	app.Run()
	return nil
}

func consoleLogger(lifecycle fx.Lifecycle) *zerolog.Logger {
	logger, _ := log.ConsoleLogger(lifecycle)
	return logger
}

func registerRoutes(router chi.Router) {
	router.Get("/panic", func(http.ResponseWriter, *http.Request) {
		readInvoicePanic("INV-42")
	})
	router.Get("/error", func(writer http.ResponseWriter, request *http.Request) {
		response := server.ServerErrorResponse{Status: http.StatusNotFound, Cause: loadInvoice("INV-42")}
		if err := response.Render(writer); err != nil {
			exception.Panic(err)
		}
	})
}

func readInvoicePanic(id string) {
	if err := readInvoice(id); err != nil {
		exception.Panic(err)
	}
}

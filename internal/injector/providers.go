package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/ontology/internal/config"
	"github.com/zeusync/ontology/internal/console"
	"github.com/zeusync/ontology/internal/core/events/bus"
	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/internal/core/ontology"
	"github.com/zeusync/ontology/internal/server"
)

// App is everything the ontology process runs.
type App struct {
	Config     config.Config
	Logger     *log.Logger
	EventBus   bus.EventBus
	Universe   *ontology.Universe
	Dispatcher *console.Dispatcher
	Server     *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideUniverse,
	ProvideInterpreter,
	ProvideDispatcher,
	ProvideServerConfig,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	return log.NewWithOptions(cfg.LogLevel(), cfg.LogOptions())
}

func ProvideEventBus(logger *log.Logger) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger))
	return b
}

func ProvideUniverse(cfg config.Config, logger *log.Logger, b bus.EventBus) *ontology.Universe {
	opts := append(cfg.UniverseOptions(), ontology.WithLogger(logger), ontology.WithEventBus(b))
	return ontology.NewUniverse(opts...)
}

func ProvideInterpreter(u *ontology.Universe, logger *log.Logger) *console.Interpreter {
	return console.NewInterpreter(u, logger)
}

func ProvideDispatcher(cfg config.Config, in *console.Interpreter, logger *log.Logger) *console.Dispatcher {
	return console.NewDispatcher(in, cfg.Console.QueueSize, logger)
}

func ProvideServerConfig(cfg config.Config) server.Config {
	sc := server.DefaultServerConfig()
	sc.ListenAddr = cfg.Console.ListenAddr
	sc.Path = cfg.Console.Path
	sc.MaxClients = cfg.Console.MaxClients
	sc.ReadBufferSize = cfg.Console.ReadBufferSize
	sc.WriteBufferSize = cfg.Console.WriteBufferSize
	sc.MaxMessageSize = cfg.Console.MaxMessageSize
	sc.RequestTimeout = cfg.Console.RequestTimeout
	return sc
}

func ProvideServer(sc server.Config, d *console.Dispatcher, logger *log.Logger) (*server.Server, error) {
	return server.NewServer(sc, d, logger)
}

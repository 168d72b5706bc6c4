package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/sockwire/internal/app"
	"github.com/vk/sockwire/internal/transport"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("sockwire", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
sockwire - A schema-checked event messenger for socket transports.

Usage:
  sockwire [options] [SCHEMA_PATH]

Arguments:
  SCHEMA_PATH
    Path to a single .hcl event catalogue or a directory containing .hcl files.

With no --url the catalogue is loaded and checked, then the program exits.
With a --url the program connects, optionally emits one event, and listens
for catalogue events until interrupted. --emit without --listen-for sends
and disconnects.

Options:
`)
		flagSet.PrintDefaults()
	}

	schemaFlag := flagSet.String("schema", "", "Path to the event catalogue file or directory.")
	sFlag := flagSet.String("s", "", "Path to the event catalogue file or directory (shorthand).")
	urlFlag := flagSet.String("url", "", "Peer URL to connect to. Empty checks the catalogue and exits.")
	transportFlag := flagSet.String("transport", "websocket", "Wire transport. Options: 'websocket' or 'socketio'.")
	carrierFlag := flagSet.String("carrier", transport.DefaultCarrierEvent, "socket.io event name that carries envelope text.")
	emitFlag := flagSet.String("emit", "", "Event to send after connecting.")
	dataFlag := flagSet.String("data", "", "JSON payload for the emitted event.")
	listenForFlag := flagSet.String("listen-for", "", "Comma-separated events to subscribe to. Empty subscribes to all.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *schemaFlag != "" {
		path = *schemaFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Schema path determined.", "path", path)

	if path == "" {
		slog.Debug("No schema path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SchemaPath:      path,
		URL:             *urlFlag,
		Transport:       strings.ToLower(*transportFlag),
		CarrierEvent:    *carrierFlag,
		EmitEvent:       *emitFlag,
		EmitData:        *dataFlag,
		ListenFor:       splitEvents(*listenForFlag),
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitEvents turns a comma-separated event list into names, dropping empty
// entries so trailing commas are harmless.
func splitEvents(list string) []string {
	var events []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			events = append(events, name)
		}
	}
	return events
}

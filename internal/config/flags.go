package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port pair usable as a [flag.Value].
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args (without the program name) into a partial config.
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		metricsAddress NetAddress
		wsAddress      string
		httpAddress    string
		requestTimeout time.Duration
		attemptTimeout time.Duration
		maxAttempts    int
		backoffBase    time.Duration
		backoffMax     time.Duration
		storageDriver  string
		databaseDSN    string
		filePath       string
		rollbackVotes  bool
		logPath        string
		jsonConfigPath string
	)

	fs := flag.NewFlagSet("feed-client", flag.ContinueOnError)
	fs.StringVar(&wsAddress, "w", "", "Websocket server URL (ws://host:port/ws/)")
	fs.StringVar(&httpAddress, "http", "", "HTTP server base URL for the login fallback")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "HTTP request timeout (e.g., 10s)")
	fs.DurationVar(&attemptTimeout, "attempt-timeout", 0, "Timeout of a single connection attempt")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Reconnect attempts before giving up")
	fs.DurationVar(&backoffBase, "backoff-base", 0, "Initial delay between reconnect attempts")
	fs.DurationVar(&backoffMax, "backoff-max", 0, "Maximum delay between reconnect attempts")
	fs.StringVar(&storageDriver, "storage", "", "Credential storage driver: sqlite or file")
	fs.StringVar(&databaseDSN, "d", "", "SQLite database file")
	fs.StringVar(&filePath, "f", "", "JSON credential file")
	fs.BoolVar(&rollbackVotes, "rollback-rejected-votes", false, "Restore the previous vote when the server rejects a vote")
	fs.Var(&metricsAddress, "m", "Metrics listen address host:port")
	fs.StringVar(&logPath, "log", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Adapter: Adapter{
			WSAddress:      wsAddress,
			HTTPAddress:    httpAddress,
			RequestTimeout: requestTimeout,
		},
		Transport: Transport{
			AttemptTimeout: attemptTimeout,
			MaxAttempts:    maxAttempts,
			BackoffBase:    backoffBase,
			BackoffMax:     backoffMax,
		},
		Storage: Storage{
			Driver: storageDriver,
			DB:     DB{DSN: databaseDSN},
			File:   File{Path: filePath},
		},
		Engine:       Engine{RollbackRejectedVotes: rollbackVotes},
		Metrics:      Metrics{Address: metricsAddress.String()},
		Log:          Log{Path: logPath},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port". The host may be empty (all interfaces),
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-a http server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-refresh-rate initial refresh rate in Hz
//	-max-connections vsync connection table size
//	-sync-timeout synchronization barrier timeout (e.g. "1s")
//	-sim-screens number of software screens
//	-token-secret capability token secret
//	-client-secret secret required to obtain a capability token
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-checkpoint-interval DFX checkpoint interval
//	-log-level zerolog level name
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var refreshRate uint
	var maxConnections int
	var syncTimeout time.Duration
	var simScreens int
	var tokenSecret string
	var clientSecret string
	var requestTimeout time.Duration
	var checkpointInterval time.Duration
	var logLevel string

	fs := flag.NewFlagSet("compositor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.UintVar(&refreshRate, "refresh-rate", 0, "Initial refresh rate in Hz")
	fs.IntVar(&maxConnections, "max-connections", 0, "VSync connection table size")
	fs.DurationVar(&syncTimeout, "sync-timeout", 0, "Synchronization barrier timeout")
	fs.IntVar(&simScreens, "sim-screens", 0, "Number of software screens")
	fs.StringVar(&tokenSecret, "token-secret", "", "Capability token secret")
	fs.StringVar(&clientSecret, "client-secret", "", "Client secret")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&checkpointInterval, "checkpoint-interval", 0, "DFX checkpoint interval")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel:     logLevel,
			TokenSecret:  tokenSecret,
			ClientSecret: clientSecret,
		},
		VSync: VSync{
			RefreshRate:    uint32(refreshRate),
			MaxConnections: maxConnections,
		},
		Transactions: Transactions{
			SyncTimeout: syncTimeout,
		},
		Composer: Composer{
			SimScreens: simScreens,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress: serverAddress.String(),
			GRPCAddress: grpcServerAddress.String(),
		},
		Workers: Workers{
			CheckpointInterval: checkpointInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Copyright (c) 2013-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcwallet/walletdb"
	"github.com/btsuite/btsledger/chainstate"
	"github.com/btsuite/btsledger/internal/cfgutil"
	"github.com/btsuite/btsledger/withdraw"
	flags "github.com/jessevdk/go-flags"

	// Database drivers selectable with --dbtype.
	_ "github.com/btcsuite/btcwallet/walletdb/bdb"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	defaultConfigFilename = "titanctl.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "titanctl.log"
	defaultDBType         = "bdb"
	defaultDBTimeout      = 60 * time.Second

	boltDBName   = "chainstate.db"
	sqliteDBName = "chainstate.sqlite"
)

var (
	titanctlHomeDir   = btcutil.AppDataDir("titanctl", false)
	defaultConfigFile = filepath.Join(titanctlHomeDir, defaultConfigFilename)
	defaultDataDir    = titanctlHomeDir
	defaultLogDir     = filepath.Join(titanctlHomeDir, defaultLogDirname)
)

type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store the chain property database"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	TestNet3   bool   `long:"testnet" description:"Derive keys for the test network"`
	SimNet     bool   `long:"simnet" description:"Derive keys for the simulation test network"`

	// Chain property store
	DBType  string                  `long:"dbtype" description:"Chain property database backend {bdb, sqlite, postgres}"`
	DSN     *cfgutil.ExplicitString `long:"dsn" description:"Data source name for the sqlite or postgres backend (default: chainstate.sqlite in the data directory for sqlite)"`
	FeeRate *cfgutil.ShareFlag      `long:"feerate" description:"Fee rate used to compute registration fees"`

	params *chaincfg.Params
}

// cleanAndExpandPath expands environement variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(titanctlHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows cmd.exe-style
	// %VARIABLE%, but they variables can still be expanded via POSIX-style
	// $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	// Convert the subsystemLoggers map keys to a slice.
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsytems for stable display.
	sort.Strings(subsystems)
	return subsystems
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// defaultConfig returns the configuration before any file or command line
// options are applied.
func defaultConfig() config {
	return config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		DBType:     defaultDBType,
		DSN:        cfgutil.NewExplicitString(""),
		FeeRate:    cfgutil.NewShareFlag(0),
	}
}

// loadConfig initializes and parses the config using a config file and command
// line options, then selects the command to run.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in titanctl functioning properly without any config
// settings while still allowing the user to override settings with config files
// and command line options.  Command line options always take precedence.
func loadConfig(args []string) (*config, *command, error) {
	cfg := defaultConfig()

	// Pre-parse the command line options to see if an alternative config
	// file was specified.  Command options are ignored here.
	preCfg := defaultConfig()
	preParser := flags.NewParser(
		&preCfg, flags.HelpFlag|flags.PassDoubleDash|flags.IgnoreUnknown,
	)
	// Help is left to the full parser so that commands are listed.
	if _, err := preParser.ParseArgs(args); err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			return nil, nil, err
		}
	}

	// Load additional config from file.
	var configFileError error
	parser := flags.NewParser(&cfg, flags.Default)
	cmds, err := addCommands(parser)
	if err != nil {
		return nil, nil, err
	}
	configFile := cleanAndExpandPath(preCfg.ConfigFile)
	err = flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
		configFileError = err
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Multiple networks can't be selected simultaneously.
	cfg.params = &chaincfg.MainNetParams
	numNets := 0
	if cfg.TestNet3 {
		numNets++
		cfg.params = &chaincfg.TestNet3Params
	}
	if cfg.SimNet {
		numNets++
		cfg.params = &chaincfg.SimNetParams
	}
	if numNets > 1 {
		return nil, nil, fmt.Errorf("the testnet and simnet params " +
			"can't be used together -- choose one")
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if err := initLogRotator(
		filepath.Join(cfg.LogDir, defaultLogFilename),
	); err != nil {
		return nil, nil, err
	}

	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, err
	}

	switch cfg.DBType {
	case "bdb", "sqlite":
	case "postgres":
		if !cfg.DSN.ExplicitlySet() {
			return nil, nil, fmt.Errorf("--dsn is required for " +
				"the postgres backend")
		}
	default:
		return nil, nil, fmt.Errorf("unknown database type %q",
			cfg.DBType)
	}

	// Warn about missing config file after the final command line parse
	// succeeds.  This prevents the warning on help messages and invalid
	// options.
	if configFileError != nil {
		log.Warnf("%v", configFileError)
	}

	cmd := cmds[parser.Active]
	if cmd == nil {
		return nil, nil, fmt.Errorf("no command given")
	}
	return &cfg, cmd, nil
}

// openStore opens the chain property store selected by the configuration.
// The returned function closes it.
func openStore(ctx context.Context, cfg *config) (chainstate.PropertyStore,
	func(), error) {

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, err
	}

	switch cfg.DBType {
	case "bdb":
		dbPath := filepath.Join(cfg.DataDir, boltDBName)
		exists, err := cfgutil.FileExists(dbPath)
		if err != nil {
			return nil, nil, err
		}

		var db walletdb.DB
		if exists {
			db, err = walletdb.Open("bdb", dbPath, true,
				defaultDBTimeout, false)
		} else {
			db, err = walletdb.Create("bdb", dbPath, true,
				defaultDBTimeout, false)
		}
		if err != nil {
			return nil, nil, err
		}

		store, err := chainstate.NewDBStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	default:
		dialect, err := chainstate.ParseDialect(cfg.DBType)
		if err != nil {
			return nil, nil, err
		}

		dsn := cfg.DSN.OrElse("file:" +
			filepath.Join(cfg.DataDir, sqliteDBName) + "?mode=rwc")

		db, err := sql.Open(dialect.DriverName(), dsn)
		if err != nil {
			return nil, nil, err
		}

		store, err := chainstate.NewSQLStore(ctx, db, dialect)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	}
}

// newChain opens the configured store and returns a chain state handle over
// it.
func newChain(ctx context.Context, cfg *config) (*chainstate.Chain, func(),
	error) {

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	feeRate := cfg.FeeRate.ShareType
	chain := chainstate.New(chainstate.Config{
		Store:   store,
		FeeRate: func() withdraw.ShareType { return feeRate },
	})
	return chain, closeStore, nil
}

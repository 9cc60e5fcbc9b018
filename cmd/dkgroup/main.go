// dkgroup groups the records of a JSON or YAML file by two of their fields and prints the result.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/yorma/commons/configuration"
	"github.com/yorma/commons/ds/doublekeymap"
	"github.com/yorma/commons/grouping"
	"github.com/yorma/commons/logger"
)

const (
	appName = "dkgroup"

	// the prefix of the environment variables that override configuration parameters.
	envPrefix = "DKGROUP"

	// CfgConfigFilePath is the name of the flag that points to the configuration file.
	CfgConfigFilePath = "config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !ierrors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		}

		os.Exit(1)
	}
}

// run parses the arguments, groups the records and writes them to the writer.
func run(args []string, writer io.Writer) error {
	params := &ParametersGroup{}

	config, err := loadConfiguration(args, params)
	if err != nil {
		return err
	}

	log, err := logger.NewRootLoggerFromConfiguration(config)
	if err != nil {
		return ierrors.Wrap(err, "unable to initialize logger")
	}
	defer func() { _ = log.Sync() }()

	records, err := grouping.LoadRecords(params.Input)
	if err != nil {
		log.Errorw("failed to load records", "input", params.Input, "err", err)

		return err
	}
	log.Debugw("loaded records", "input", params.Input, "count", len(records))

	grouped, err := grouping.Group(records, grouping.Options{
		PrimaryField:   params.Primary,
		SecondaryField: params.Secondary,
		ValueField:     params.Value,
		Ordered:        params.Ordered,
		SkipIncomplete: params.SkipIncomplete,
		KeepFirst:      params.KeepFirst,
	})
	if err != nil {
		log.Errorw("failed to group records", "err", err)

		return err
	}
	log.Infow("grouped records", "primaryKeys", grouped.PrimarySize(), "entries", grouped.Size())

	batches := []*doublekeymap.DoubleKeyMap[string, string, string]{grouped}
	if params.BatchSize > 0 {
		if batches, err = grouped.Batches(params.BatchSize); err != nil {
			return err
		}
	}

	for i, batch := range batches {
		if len(batches) > 1 {
			if _, err := fmt.Fprintf(writer, "# batch %d/%d\n", i+1, len(batches)); err != nil {
				return err
			}
		}

		if err := writeBatch(writer, params.Format, batch); err != nil {
			log.Errorw("failed to write batch", "batch", i, "err", err)

			return err
		}
	}

	return nil
}

// loadConfiguration merges the config file, the environment variables and the command line flags (in ascending
// priority) and writes the result into the parameters.
func loadConfiguration(args []string, params *ParametersGroup) (*configuration.Configuration, error) {
	flagSet := configuration.NewUnsortedFlagSet(appName, flag.ContinueOnError)
	configFilePath := flagSet.String(CfgConfigFilePath, "", "the JSON or YAML file that contains the configuration")

	config := configuration.New()
	config.BindParameters(flagSet, "group", params)

	flagSet.String(logger.ConfigurationKeyLevel, logger.DefaultCfg.Level, "the minimum enabled logging level")
	flagSet.Bool(logger.ConfigurationKeyDisableCaller, true, "whether to stop annotating logs with the caller")
	flagSet.Bool(logger.ConfigurationKeyDisableStacktrace, true, "whether to disable automatic stacktrace capturing")
	flagSet.String(logger.ConfigurationKeyEncoding, logger.DefaultCfg.Encoding, "the logger's encoding (json or console)")
	flagSet.StringSlice(logger.ConfigurationKeyOutputPaths, []string{"stderr"}, "where to write the log output to")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	if *configFilePath != "" {
		if err := config.LoadFile(*configFilePath); err != nil {
			return nil, ierrors.Wrap(err, "unable to load configuration")
		}
	}

	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, ierrors.Wrap(err, "unable to load flags")
	}

	// load the env vars after default values from flags were set (otherwise the env vars are not added because the keys don't exist)
	if err := config.LoadEnvironmentVars(envPrefix); err != nil {
		return nil, ierrors.Wrap(err, "unable to load environment variables")
	}

	// load the flags again to overwrite env vars that were also set via command line
	if err := config.LoadFlagSet(flagSet); err != nil {
		return nil, ierrors.Wrap(err, "unable to load flags")
	}

	config.UpdateBoundParameters()

	return config, nil
}

package cmd

import (
	"fmt"
	"os"
	"path"

	"stakelend/config"
	"stakelend/core"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var (
	cfgFile   string
	cfg       core.Config
	debugMode bool
)

var rootCmd = cobra.Command{
	Use:          "stakelend",
	Short:        "lending pools priced against validator staking yield",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		file, err := configFile()
		if err != nil {
			return err
		}

		if file != "" {
			logrus.Debugln("use config file", file)
		}

		return config.Load(file, &cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file. default is ~/.stakelend.yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable or disable debug model")
}

// Execute runs the command line, called once by main.main
func Execute(ver string) {
	rootCmd.Version = ver
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// configFile the --config flag, else ~/.stakelend.yaml when present
func configFile() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	dir, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	filename := path.Join(dir, ".stakelend.yaml")
	if info, err := os.Stat(filename); err == nil && !info.IsDir() {
		return filename, nil
	}

	return "", nil
}

func setupLogging() {
	level := logrus.InfoLevel
	if debugMode {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	structs.DefaultTagName = "json"
}

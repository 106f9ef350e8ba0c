/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Chroma commands. Provides configuration loading,
logging setup and construction of the classifier from a built-in mode or a rule-base
document.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/kleascm/akaylee-chroma/pkg/logging"
	"github.com/kleascm/akaylee-chroma/pkg/rulebase"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CHROMA")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the application logger from the log_* settings
func SetupLogging() (*logging.Logger, error) {
	config := logging.DefaultConfig()
	config.Level = logging.LogLevel(viper.GetString("log_level"))
	config.Format = logging.LogFormat(viper.GetString("log_format"))
	config.OutputDir = viper.GetString("log_dir")
	config.MaxFiles = viper.GetInt("log_max_files")

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// setup runs LoadConfig and SetupLogging, the prologue of every command.
func setup() (*logging.Logger, error) {
	if err := LoadConfig(); err != nil {
		return nil, err
	}
	return SetupLogging()
}

// loadEngine configures the active colour engine: the --rulebase document when set,
// otherwise the built-in rule base for --mode.
func loadEngine() (*fuzzy.Engine, error) {
	if path := viper.GetString("rulebase"); path != "" {
		doc, err := rulebase.Load(path)
		if err != nil {
			return nil, err
		}
		engine, err := doc.Configure()
		if err != nil {
			return nil, fmt.Errorf("failed to configure rule base %s: %w", path, err)
		}
		return engine, nil
	}

	rb, err := chroma.ColorRuleBase(chroma.Mode(viper.GetInt("mode")))
	if err != nil {
		return nil, err
	}
	return fuzzy.Configure(rb)
}

// loadClassifier wraps the active engine in a classifier and attaches the logger.
func loadClassifier(logger *logging.Logger) (*chroma.Classifier, error) {
	var (
		c   *chroma.Classifier
		err error
	)
	if viper.GetString("rulebase") == "" {
		c, err = chroma.New(viper.GetInt("mode"))
	} else {
		var engine *fuzzy.Engine
		if engine, err = loadEngine(); err == nil {
			c, err = chroma.FromEngine(engine)
		}
	}
	if err != nil {
		return nil, err
	}

	c.SetLogger(logger.GetLogger())
	engine := c.Engine()
	logger.LogRuleBase(engine.ID(), engine.Name(), len(engine.InputVariables()), len(engine.OutputVariables()), len(engine.Rules()))
	return c, nil
}

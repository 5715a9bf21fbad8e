package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"m7s.live/mp4vtt/pkg/config"
	"m7s.live/mp4vtt/pkg/logging"
)

const envPrefix = "VTTBOX"

type Config struct {
	Log    logging.Config
	Encode struct {
		Timescale          uint32 `default:"1000" desc:"样本时间刻度"`
		Label              string `desc:"vlab 源标签"`
		DataReferenceIndex uint16 `default:"1" yaml:"datareferenceindex"`
	}
}

type commandContext struct {
	configFlag *string
	levelFlag  *string

	configOnce sync.Once
	config     *Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag, levelFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		levelFlag:  levelFlag,
	}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		var conf Config
		if err := config.Load(&conf, path, envPrefix); err != nil {
			c.configErr = err
			return
		}
		if c.levelFlag != nil && *c.levelFlag != "" {
			conf.Log.Level = *c.levelFlag
		}
		handler, err := logging.NewHandler(cmd.ErrOrStderr(), &conf.Log)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = &conf
		c.logger = slog.New(handler)
	})
	return c.config, c.configErr
}

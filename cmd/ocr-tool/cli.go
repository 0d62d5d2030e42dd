package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gocr/internal/config"
	"gocr/internal/logger"
	"gocr/internal/ocr"
	"gocr/pkg/tesseract"
)

type CLI struct {
	settings config.Settings
	configs  []string
	vars     []string
	debug    bool

	out    io.Writer
	errOut io.Writer
}

func NewCLI(settings config.Settings) *CLI {
	return &CLI{
		settings: settings,
		debug:    settings.Debug,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
}

func (c *CLI) Run(args []string) error {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	return root.ExecuteContext(context.Background())
}

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ocr-tool",
		Short:         "Recognise text in images with Tesseract",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.debug {
				logger.SetDebug(true)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.settings.DataPath, "datapath", c.settings.DataPath, "Directory holding traineddata files (TESSDATA_PREFIX)")
	flags.StringVar(&c.settings.Language, "lang", c.settings.Language, "Languages to load, e.g. eng or eng+deu")
	flags.StringVar(&c.settings.Engine, "engine", c.settings.Engine, "OCR engine type (tesseract, gosseract)")
	flags.StringArrayVar(&c.configs, "config", nil, "Tesseract config file, may be repeated")
	flags.StringArrayVar(&c.vars, "var", nil, "Engine variable as name=value, may be repeated")
	flags.BoolVar(&c.debug, "debug", c.debug, "Enable debug logging")

	root.AddCommand(
		c.textCommand(),
		c.wordsCommand(),
		c.batchCommand(),
		c.infoCommand(),
		c.configCommand(),
		c.validateCommand(),
		c.getCommand(),
		c.paramsCommand(),
		c.selftestCommand(),
	)
	return root
}

// ocrSettings turns the flags into settings for the engine factory.
func (c *CLI) ocrSettings() (ocr.Settings, error) {
	s := ocr.Settings{
		DataPath: c.settings.DataPath,
		Language: c.settings.Language,
		Configs:  c.configs,
	}
	for _, raw := range c.vars {
		v, err := ocr.ParseVariable(raw)
		if err != nil {
			return ocr.Settings{}, err
		}
		s.Variables = append(s.Variables, v)
	}
	return s, nil
}

// newEngine opens a native engine for the configuration subcommands.
func (c *CLI) newEngine() (*tesseract.Engine, error) {
	s, err := c.ocrSettings()
	if err != nil {
		return nil, err
	}
	opts := []tesseract.Option{
		tesseract.WithDataPath(s.DataPath),
		tesseract.WithLanguage(s.Language),
		tesseract.WithConfigFiles(s.Configs...),
	}
	for _, v := range s.Variables {
		opts = append(opts, tesseract.WithVariable(v.Name, v.Value))
	}
	return tesseract.New(opts...)
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	keyColor  = color.New(color.FgCyan)
)

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

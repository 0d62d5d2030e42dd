package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"gocr/internal/data"
	"gocr/internal/fixture"
	"gocr/internal/image"
	"gocr/internal/ocr"
	"gocr/internal/ocr/engine"
	"gocr/internal/pipeline"
	"gocr/internal/writer"
	"gocr/pkg/tesseract"
)

// readInput loads an image file, optionally through the enhancement filter.
// The format flag is validated either way; enhanced images are always png.
func readInput(path, format string, enhance bool) ([]byte, tesseract.Format, error) {
	f := tesseract.FormatAuto
	if format != "" {
		var err error
		if f, err = tesseract.ParseFormat(format); err != nil {
			return nil, tesseract.FormatAuto, err
		}
	}
	if enhance {
		data, err := image.NewImageProcessor().EnhanceFile(path)
		return data, tesseract.FormatPNG, err
	}
	data, err := os.ReadFile(path)
	return data, f, err
}

func (c *CLI) process(path, format string, enhance bool, mode ocr.Mode) (ocr.Page, error) {
	data, f, err := readInput(path, format, enhance)
	if err != nil {
		return ocr.Page{}, err
	}
	settings, err := c.ocrSettings()
	if err != nil {
		return ocr.Page{}, err
	}
	e, err := engine.New(c.settings.Engine, settings)
	if err != nil {
		return ocr.Page{}, err
	}
	defer e.Close()

	return e.ProcessImage(ocr.Request{Filename: path, Data: data, Format: f, Mode: mode})
}

func (c *CLI) textCommand() *cobra.Command {
	var hocr, enhance bool
	var format string

	cmd := &cobra.Command{
		Use:   "text <image>",
		Short: "Print the text of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := ocr.ModeText
			if hocr {
				mode = ocr.ModeHOCR
			}
			page, err := c.process(args[0], format, enhance, mode)
			if err != nil {
				return err
			}
			c.printf("%s", page.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&hocr, "hocr", false, "Print hOCR markup instead of plain text")
	cmd.Flags().StringVar(&format, "format", "", "Decode the input only as this format ("+formatList()+")")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Enhance the image before recognition")
	return cmd
}

func (c *CLI) wordsCommand() *cobra.Command {
	var tsv, enhance bool
	var format string

	cmd := &cobra.Command{
		Use:   "words <image>",
		Short: "Print the word table of an image as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.process(args[0], format, enhance, ocr.ModeWords)
			if err != nil {
				return err
			}

			var opts []writer.Option
			if tsv {
				opts = append(opts, writer.WithComma('\t'))
			}
			w := writer.NewCSVWriter(data.MapWordRecord, data.GetWordHeader, opts...)
			defer w.Close()
			return w.Write(c.out, data.WordRecords(filepath.Base(args[0]), page.Words))
		},
	}
	cmd.Flags().BoolVar(&tsv, "tsv", false, "Separate fields with tabs")
	cmd.Flags().StringVar(&format, "format", "", "Decode the input only as this format ("+formatList()+")")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Enhance the image before recognition")
	return cmd
}

func (c *CLI) batchCommand() *cobra.Command {
	var modeName string
	var tsv, enhance bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Recognise every image in a directory into one CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.ocrSettings()
			if err != nil {
				return err
			}
			mode, err := ocr.ParseMode(modeName)
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), pipeline.Options{
				Engine:    c.settings.Engine,
				Settings:  settings,
				ImagesDir: c.settings.ImagesDir,
				OutputDir: c.settings.OutputDir,
				Mode:      mode,
				Workers:   c.settings.Workers,
				Enhance:   enhance,
				TSV:       tsv,
			})
			if err != nil {
				return err
			}
			c.printReport(report)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.settings.ImagesDir, "images", c.settings.ImagesDir, "Directory containing images to process")
	cmd.Flags().StringVar(&c.settings.OutputDir, "output", c.settings.OutputDir, "Output directory for results")
	cmd.Flags().IntVar(&c.settings.Workers, "workers", c.settings.Workers, "Number of OCR workers")
	cmd.Flags().StringVar(&modeName, "mode", ocr.ModeText.String(), "Rows to write: text (one per page) or words (one per word)")
	cmd.Flags().BoolVar(&tsv, "tsv", false, "Separate fields with tabs")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Enhance images before recognition")
	return cmd
}

func (c *CLI) printReport(report *pipeline.Report) {
	for _, path := range sortedKeys(report.Failures) {
		failColor.Fprintf(c.out, "Error processing %s: %v\n", path, report.Failures[path])
	}
	for _, path := range sortedKeys(report.Writes) {
		c.printf("Processed %s: %d rows\n", path, report.Writes[path])
	}
	c.printf("\nRun %s complete! Results saved to: %s\n", report.RunID, report.OutputFile)
	c.printf("Processed %d images, %d failed, %d words", report.Stats.Pages, len(report.Failures), report.Stats.Words)
	if report.Stats.Words > 0 {
		c.printf(", mean confidence %.2f", report.Stats.MeanConfidence)
	}
	c.printf("\n")
}

func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the data path and languages of an engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			defer e.Close()

			info, err := e.Info()
			if err != nil {
				return err
			}
			keyColor.Fprint(c.out, "datapath:  ")
			c.printf("%s\n", info.DataPath)
			keyColor.Fprint(c.out, "loaded:    ")
			c.printf("%s\n", strings.Join(info.Loaded, ", "))
			keyColor.Fprint(c.out, "available: ")
			c.printf("%s\n", strings.Join(info.Available, ", "))
			return nil
		},
	}
}

func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the linked Tesseract version and default data path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := tesseract.ListConfig()
			if err != nil {
				return err
			}
			keyColor.Fprint(c.out, "version:  ")
			c.printf("%s\n", cfg.Version)
			keyColor.Fprint(c.out, "datapath: ")
			c.printf("%s\n", cfg.DataPath)
			return nil
		},
	}
}

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <name>...",
		Short: "Check which parameter names the engine knows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			valid, err := tesseract.ValidateParams(args...)
			if err != nil {
				return err
			}
			for i, name := range args {
				if valid[i] {
					okColor.Fprintf(c.out, "%s: valid\n", name)
				} else {
					failColor.Fprintf(c.out, "%s: unknown\n", name)
				}
			}
			return nil
		},
	}
}

func (c *CLI) getCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "get <name>...",
		Short: "Print engine parameter values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			defer e.Close()

			for _, raw := range sets {
				v, err := ocr.ParseVariable(raw)
				if err != nil {
					return err
				}
				if _, err := e.SetVariable(v.Name, v.Value); err != nil {
					return err
				}
			}

			vars, err := e.GetVariables(args...)
			if err != nil {
				return err
			}
			for _, v := range vars {
				if !v.Known {
					failColor.Fprintf(c.out, "%s: unknown\n", v.Name)
					continue
				}
				c.printf("%s=%s\n", v.Name, v.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set name=value on the engine before reading, may be repeated")
	return cmd
}

func (c *CLI) paramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params <file>",
		Short: "Write every engine parameter and its value to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tesseract.PrintParams(args[0]); err != nil {
				return err
			}
			okColor.Fprintf(c.out, "Parameters written to %s\n", args[0])
			return nil
		},
	}
}

// selftestCommand renders a known page and checks that both the text and the
// word table come back.
func (c *CLI) selftestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Render a test page and recognise it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			const want = "HELLO"
			page, err := fixture.Page("png", want)
			if err != nil {
				return fmt.Errorf("rendering test page: %w", err)
			}
			settings, err := c.ocrSettings()
			if err != nil {
				return err
			}
			e, err := engine.New(c.settings.Engine, settings)
			if err != nil {
				return err
			}
			defer e.Close()

			text, err := e.ProcessImage(ocr.Request{Filename: "selftest.png", Data: page, Mode: ocr.ModeText})
			if err != nil {
				return err
			}
			words, err := e.ProcessImage(ocr.Request{Filename: "selftest.png", Data: page, Mode: ocr.ModeWords})
			if err != nil {
				return err
			}

			got := data.NormalizeText(text.Text)
			if got != want || data.JoinWords(words.Words) != want {
				failColor.Fprintf(c.out, "FAIL: expected %q, got text %q and words %q\n", want, got, data.JoinWords(words.Words))
				return fmt.Errorf("selftest failed")
			}
			okColor.Fprintf(c.out, "PASS: %s at %s (confidence %.1f)\n", want, words.Words[0].Box, words.Words[0].Confidence)
			return nil
		},
	}
}

func formatList() string {
	names := make([]string, 0, len(tesseract.Formats()))
	for _, f := range tesseract.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

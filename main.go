package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/rml2csv/config"
	"github.com/ByLCY/rml2csv/dsl"
	"github.com/ByLCY/rml2csv/layout"
	"github.com/ByLCY/rml2csv/renderer"
	textrenderer "github.com/ByLCY/rml2csv/renderer/text"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var cfgPath string
	v := viper.New()

	root := &cobra.Command{
		Use:   "rml2csv [input.rml]",
		Short: "Render report markup as flattened text",
		Long: `rml2csv renders an RML report document as plain text: paragraphs become
lines, table rows become quoted comma-terminated cells and stories are
separated by a blank line. Use "-" to read the document from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			settings, err := loadSettings(v, cfgPath)
			if err != nil {
				return err
			}
			return run(args[0], settings, stdin, stdout, newLogger(stderr, settings.Verbose))
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	flags.StringP("output", "o", "", "输出文件路径，默认写到 stdout")
	flags.String("encoding", "utf-8", "charset of the emitted text, e.g. iso-8859-7")
	flags.String("data", "", "绑定到 [[ ... ]] 占位符的 JSON，@path 表示从文件读取")
	flags.String("debug", "", "页面模板调试 JSON 输出路径")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	for _, name := range []string{"output", "encoding", "data", "debug", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(v, cfgPath)
			if err != nil {
				return err
			}
			out, err := settings.YAML()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	})
	return root
}

func loadSettings(v *viper.Viper, cfgPath string) (config.Settings, error) {
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	}
	return config.Load(v)
}

// newLogger creates a stderr logger; verbose selects debug level.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// run 串联解析、渲染与输出。
func run(inputPath string, settings config.Settings, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	start := time.Now()
	data, err := settings.BindData()
	if err != nil {
		return err
	}

	doc, err := parseInput(inputPath, stdin)
	if err != nil {
		return err
	}

	if settings.Debug != "" {
		if err := writeDebug(doc, settings.Debug, logger); err != nil {
			return err
		}
	}

	var r renderer.Renderer = textrenderer.NewRenderer(textrenderer.Options{Logger: logger, Data: data})
	out, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", inputPath, err)
	}
	out, err = renderer.Encode(out, settings.Encoding)
	if err != nil {
		return err
	}

	if settings.Output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(settings.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(settings.Output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", settings.Output, err)
	}
	logger.Info("rendered", "input", inputPath, "output", settings.Output, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func parseInput(inputPath string, stdin io.Reader) (*dsl.Node, error) {
	if inputPath == "-" {
		doc, err := dsl.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("parse stdin: %w", err)
		}
		return doc, nil
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", inputPath, err)
	}
	return doc, nil
}

func writeDebug(doc *dsl.Node, debugPath string, logger *log.Logger) error {
	tmpl := layout.FindTemplate(doc)
	if tmpl == nil {
		logger.Warn("no template to dump", "path", debugPath)
		return nil
	}
	templates, err := layout.BuildTemplates(tmpl, layout.BuildOptions{})
	if err != nil {
		return fmt.Errorf("build page templates: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(templates, debugPath); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	logger.Debug("page templates dumped", "path", debugPath, "templates", templates.IDs())
	return nil
}

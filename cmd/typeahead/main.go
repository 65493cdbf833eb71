package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"typeahead/internal/config"
	"typeahead/internal/debug"
	appErrors "typeahead/internal/errors"
	"typeahead/internal/ui/theme"
)

// errCancelled is returned when the user leaves the picker without choosing.
var errCancelled = errors.New("selection cancelled")

type cliFlags struct {
	file        string
	sqlite      string
	table       string
	labelColumn string
	groupColumn string
	graphql     string
	query       string
	path        string
	headers     []string
	command     string
	async       bool

	multiple       bool
	disabled       bool
	disableEnter   bool
	placeholder    string
	label          string
	group          string
	limit          int
	loadCache      bool
	fuzzy          bool
	loadTimeout    time.Duration
	searchDebounce time.Duration
	theme          string
	previewField   string
	previewStyle   string
	debug          bool
	logLevel       string
	json           bool
	version        bool
}

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, errCancelled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	f := &cliFlags{}
	cmd := &cobra.Command{
		Use:   "typeahead [flags] [option...]",
		Short: "Pick one or more options from a filterable dropdown",
		Long: `typeahead shows a searchable dropdown in the terminal and prints the chosen
option(s) to stdout, one label per line (or JSON with --json).

Options come from the arguments or from exactly one source:
  --file     JSON, YAML or TOML list of strings or records
  --sqlite   a table in a SQLite database (read-only)
  --graphql  a GraphQL endpoint queried with $search
  --command  an external command run with the search text appended

Ctrl+S accepts the current selection. In single-select mode choosing an
option accepts it. Esc on a closed, empty input cancels with exit status 1.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.version {
				printVersion(stdout)
				return nil
			}
			return run(cmd.Flags(), f, args, stdout)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.file, "file", "", "Load options from a JSON, YAML or TOML file")
	fs.StringVar(&f.sqlite, "sqlite", "", "Load options from a SQLite database file")
	fs.StringVar(&f.table, "table", "", "SQLite table holding the options")
	fs.StringVar(&f.labelColumn, "label-column", "", "SQLite column matched against the search (default: label field)")
	fs.StringVar(&f.groupColumn, "group-column", "", "SQLite column carried along for grouping")
	fs.StringVar(&f.graphql, "graphql", "", "Load options from a GraphQL endpoint")
	fs.StringVar(&f.query, "query", "", "GraphQL query, or @file to read it from a file")
	fs.StringVar(&f.path, "path", "", "Dotted path to the option list inside the GraphQL response data")
	fs.StringArrayVar(&f.headers, "header", nil, "GraphQL request header as 'Name: value' (repeatable)")
	fs.StringVar(&f.command, "command", "", "Load options from a command run with the search text appended")
	fs.BoolVar(&f.async, "async", false, "Serve argument or file options through the async loader")

	fs.BoolVar(&f.multiple, "multiple", false, "Allow selecting several options")
	fs.BoolVar(&f.disabled, "disabled", false, "Show the input read-only")
	fs.StringVar(&f.placeholder, "placeholder", "", "Placeholder shown while the input is empty")
	fs.BoolVar(&f.disableEnter, "disable-enter", false, "Do not select with Enter")
	fs.StringVar(&f.label, "label", "", "Record field used as the option label")
	fs.IntVar(&f.limit, "limit", config.DefaultLimit, "Dropdown rows before scrolling (0 shows all)")
	fs.StringVar(&f.group, "group", "", "Record field used to group options")
	fs.BoolVar(&f.loadCache, "load-cache", false, "Load async options once and reuse them")
	fs.BoolVar(&f.fuzzy, "fuzzy", false, "Rank options by fuzzy match instead of substring")
	fs.DurationVar(&f.loadTimeout, "load-timeout", config.DefaultLoadTimeout, "Deadline for a single options load")
	fs.DurationVar(&f.searchDebounce, "search-debounce", 0, "Reload async options this long after typing stops (0 disables)")
	fs.StringVar(&f.theme, "theme", theme.DefaultName, "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	fs.StringVar(&f.previewField, "preview-field", "description", "Record field rendered as markdown below the input")
	fs.StringVar(&f.previewStyle, "preview-style", "dark", "Preview markdown style (dark, light, notty, plain)")
	fs.BoolVar(&f.debug, "debug", false, "Write a debug log to ~/.typeahead/debug.log")
	fs.StringVar(&f.logLevel, "log-level", "debug", "Minimum debug log level")
	fs.BoolVar(&f.json, "json", false, "Print the selection as JSON")
	fs.BoolVar(&f.version, "version", false, "Print version information and exit")

	return cmd
}

// flagConfigKeys maps flags that mirror configuration keys.
var flagConfigKeys = map[string]string{
	"theme":           config.KeyTheme,
	"limit":           config.KeyLimit,
	"label":           config.KeyLabelField,
	"group":           config.KeyOptionGroup,
	"multiple":        config.KeyMultiple,
	"disable-enter":   config.KeyDisableEnter,
	"placeholder":     config.KeyPlaceholder,
	"fuzzy":           config.KeyFuzzy,
	"load-cache":      config.KeyLoadCache,
	"load-timeout":    config.KeyLoadTimeout,
	"search-debounce": config.KeySearchDebounce,
	"debug":           config.KeyDebug,
	"log-level":       config.KeyLogLevel,
}

// configOverrides collects explicitly set flags so they win over config
// files and the environment.
func configOverrides(fs *pflag.FlagSet) map[string]any {
	overrides := map[string]any{}
	fs.Visit(func(fl *pflag.Flag) {
		if key, ok := flagConfigKeys[fl.Name]; ok {
			overrides[key] = fl.Value.String()
		}
	})
	return overrides
}

func run(fs *pflag.FlagSet, f *cliFlags, args []string, stdout io.Writer) error {
	if err := config.Initialize(); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "initialize config", err)
	}
	if err := config.ApplyOverrides(configOverrides(fs)); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "apply flags", err)
	}

	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug logging disabled: %v\n", err)
	}
	defer debug.Close()
	if err := debug.SetLevel(config.GetString(config.KeyLogLevel)); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "set log level", err)
	}

	if name := config.GetString(config.KeyTheme); !theme.SetTheme(name) {
		debug.Warn("unknown theme, keeping default", "theme", name, "current", theme.CurrentName())
	}

	src, err := buildSource(f, args)
	if err != nil {
		return err
	}
	settings := settingsFromConfig(f)
	debug.Log("starting picker", "source", src.name, "multiple", settings.multiple)

	final, err := runPicker(newPicker(src, settings), func(m tea.Model) programRunner {
		return tea.NewProgram(m, tea.WithOutput(os.Stderr))
	})
	if err != nil {
		return err
	}
	if final.cancelled {
		return errCancelled
	}
	return writeResult(stdout, final.input.Value(), final.input.Label, f.json)
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(tea.Model) programRunner

func runPicker(p picker, factory programFactory) (picker, error) {
	if factory == nil {
		return p, fmt.Errorf("program factory is nil")
	}
	prog := factory(p)
	if prog == nil {
		return p, fmt.Errorf("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return p, fmt.Errorf("run picker: %w", err)
	}
	out, ok := final.(picker)
	if !ok {
		return p, fmt.Errorf("unexpected final model %T", final)
	}
	return out, nil
}

func settingsFromConfig(f *cliFlags) pickerSettings {
	return pickerSettings{
		multiple:       config.GetBool(config.KeyMultiple),
		disabled:       f.disabled,
		disableEnter:   config.GetBool(config.KeyDisableEnter),
		placeholder:    config.GetString(config.KeyPlaceholder),
		labelField:     config.GetString(config.KeyLabelField),
		group:          config.GetString(config.KeyOptionGroup),
		limit:          config.GetInt(config.KeyLimit),
		loadCache:      config.GetBool(config.KeyLoadCache),
		fuzzy:          config.GetBool(config.KeyFuzzy),
		loadTimeout:    config.GetDuration(config.KeyLoadTimeout),
		searchDebounce: config.GetDuration(config.KeySearchDebounce),
		previewField:   f.previewField,
		previewStyle:   f.previewStyle,
	}
}

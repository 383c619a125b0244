package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/atomicstack/styleselect/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Dump    bool
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envServer   = "STYLESELECT_SERVER"
	envDocument = "STYLESELECT_DOCUMENT"
	envFixture  = "STYLESELECT_FIXTURE"
	envLocale   = "STYLESELECT_LOCALE"
	envStrings  = "STYLESELECT_STRINGS"
	envReadOnly = "STYLESELECT_READONLY"
	envWidth    = "STYLESELECT_WIDTH"
	envHeight   = "STYLESELECT_HEIGHT"
	envFooter   = "STYLESELECT_FOOTER"
	envDump     = "STYLESELECT_DUMP"
	envTrace    = "STYLESELECT_TRACE"
	envLogFile  = "STYLESELECT_LOG_FILE"
	envLang     = "LANG"
)

const defaultLocale = "en"

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("styleselect", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	server := fs.String("server", envOrDefault(env, envServer, ""), "document engine websocket URL")
	document := fs.String("document", envOrDefault(env, envDocument, ""), "URL of the document the engine should load")
	fixture := fs.String("fixture", envOrDefault(env, envFixture, ""), "YAML session fixture for offline mode")
	locale := fs.String("locale", envOrDefault(env, envLocale, localeFromLang(env[envLang])), "display locale as a BCP 47 tag")
	stringsFile := fs.String("strings", envOrDefault(env, envStrings, ""), "additional YAML string table")
	readOnly := fs.Bool("readonly", envOrBool(env, envReadOnly, false), "open the document without edit permission")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer key hints (disabled by default)")
	dump := fs.Bool("dump", envOrBool(env, envDump, false), "print the style rows as a table and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Server:     strings.TrimSpace(*server),
			Document:   strings.TrimSpace(*document),
			Fixture:    strings.TrimSpace(*fixture),
			Locale:     strings.TrimSpace(*locale),
			Strings:    strings.TrimSpace(*stringsFile),
			ReadOnly:   *readOnly,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
		},
		Dump: *dump,
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"server":   *server,
			"document": *document,
			"fixture":  *fixture,
			"locale":   *locale,
			"strings":  *stringsFile,
			"readonly": strconv.FormatBool(*readOnly),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"dump":     strconv.FormatBool(*dump),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// localeFromLang turns a POSIX locale such as "de_DE.UTF-8" into "de-DE".
func localeFromLang(lang string) string {
	lang, _, _ = strings.Cut(lang, ".")
	lang, _, _ = strings.Cut(lang, "@")
	switch lang {
	case "", "C", "POSIX":
		return defaultLocale
	}
	return strings.ReplaceAll(lang, "_", "-")
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks that exactly one engine source is configured and that the
// locale is a valid tag.
func Validate(cfg Config) error {
	a := cfg.App
	switch {
	case a.Server == "" && a.Fixture == "":
		return errors.New("one of -server or -fixture is required")
	case a.Server != "" && a.Fixture != "":
		return errors.New("-server and -fixture are mutually exclusive")
	case a.Server != "" && a.Document == "":
		return errors.New("-server requires -document")
	}
	if _, err := language.Parse(a.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", a.Locale, err)
	}
	return nil
}

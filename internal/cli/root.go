// Package cli implements the lingo command: resolving locale trees from the
// command line, serving them over HTTP and moving them between stores.
//
// Every flag can also be set in a .lingo.yaml file in the working directory,
// a file named by --config, or an environment variable: LINGO_ followed by the
// flag name in upper case with dashes replaced by underscores, for example
// LINGO_DEFAULT_LANG or LINGO_DATABASE_URL. Flags win over the environment,
// which wins over the file.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/lingo/middlewares"
	"github.com/dmitrymomot/lingo/pkg/logger"
)

// EnvPrefix prefixes every environment variable the command reads.
const EnvPrefix = "LINGO"

// Setting keys. Each one is also a flag name.
const (
	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
	keySentryDSN   = "sentry-dsn"
	keySentryEnv   = "sentry-env"
	keySource      = "source"
	keyDir         = "dir"
	keyDefaultLang = "default-lang"
	keyDatabaseURL = "database-url"
	keyTable       = "table"
	keyRedisURL    = "redis-url"
	keyRedisPrefix = "redis-prefix"
	keyS3Bucket    = "s3-bucket"
	keyS3Prefix    = "s3-prefix"
	keyS3Region    = "s3-region"
	keyS3Endpoint  = "s3-endpoint"
	keyS3AccessKey = "s3-access-key"
	keyS3SecretKey = "s3-secret-key"
	keyS3PathStyle = "s3-path-style"
)

type app struct {
	v   *viper.Viper
	log *slog.Logger
}

// NewRootCommand builds the lingo command tree. Each call has its own
// configuration, so several trees can run side by side in tests.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: logger.NewNope()}

	root := &cobra.Command{
		Use:   "lingo",
		Short: "Fenced fallback localization",
		Long: `lingo merges every language's locale tree over the default language:
keys the language defines win, missing keys come from the default, and
fenced values are taken whole.

Commands:
  lingo resolve --lang de            print the merged tree of a language
  lingo resolve --lang de --trace    show where every leaf came from
  lingo serve --watch                serve merged trees over HTTP
  lingo push --source postgres       copy a locale directory into a store`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newResolveCommand(a),
		newLangsCommand(a),
		newServeCommand(a),
		newPushCommand(a),
		newMigrateCommand(a),
	)
	return root
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, "", "config file (default .lingo.yaml in the working directory)")
	fs.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	fs.String(keyLogFormat, logger.FormatText, "log format: text or json")
	fs.String(keySentryDSN, "", "report errors to this Sentry DSN")
	fs.String(keySentryEnv, "production", "Sentry environment")

	fs.String(keySource, sourceFS, "where locale trees live: fs, postgres, redis or s3")
	fs.String(keyDir, "locales", "locale directory laid out as {lang}/{namespace}.json|yaml")
	fs.String(keyDefaultLang, "en", "default language every other language falls back to")

	fs.String(keyDatabaseURL, "", "PostgreSQL connection URL")
	fs.String(keyTable, "", "PostgreSQL table holding locale trees")
	fs.String(keyRedisURL, "", "Redis connection URL")
	fs.String(keyRedisPrefix, "", "Redis key prefix for locale hashes")

	fs.String(keyS3Bucket, "", "S3 bucket")
	fs.String(keyS3Prefix, "", "S3 key prefix")
	fs.String(keyS3Region, "", "S3 region")
	fs.String(keyS3Endpoint, "", "S3-compatible endpoint, e.g. a MinIO URL")
	fs.String(keyS3AccessKey, "", "S3 access key")
	fs.String(keyS3SecretKey, "", "S3 secret key")
	fs.Bool(keyS3PathStyle, false, "use path-style S3 URLs")
}

// init reads the config file and environment, then builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString(keyConfig); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".lingo")
		a.v.SetConfigType("yaml")
		var notFound viper.ConfigFileNotFoundError
		if err := a.v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := logger.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	a.log = logger.NewWithSentry(
		logger.Config{
			Level:  level,
			Format: a.v.GetString(keyLogFormat),
			Output: cmd.ErrOrStderr(),
		},
		logger.SentryConfig{
			DSN:         a.v.GetString(keySentryDSN),
			Environment: a.v.GetString(keySentryEnv),
		},
		logger.LanguageExtractor(),
		middlewares.RequestIDExtractor(),
	)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", slog.String("file", used))
	}
	return nil
}

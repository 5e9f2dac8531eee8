package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "CATALOG_CONFIG_FILE"
	envPrefix         = "CATALOG"
)

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type api struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	TLS     tlsFiles      `mapstructure:"tls"`
}

type stub struct {
	HTTPServerAddr string `mapstructure:"http_server_addr"`
}

type events struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	API      api        `mapstructure:"api"`
	Stub     stub       `mapstructure:"stub"`
	Events   events     `mapstructure:"events"`
}

// EventsEnabled reports whether submission events should be published.
func (c Config) EventsEnabled() bool {
	return len(c.Events.SeedBrokers) != 0
}

// Load reads the file named by the --config flag or CATALOG_CONFIG_FILE and
// exits the process on failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML file at path over the defaults. An empty path
// yields the defaults with env overrides applied.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.tls.ca", "")
	v.SetDefault("api.tls.cert", "")
	v.SetDefault("api.tls.key", "")
	v.SetDefault("stub.http_server_addr", ":8080")
	v.SetDefault("events.seed_brokers", []string{})
	v.SetDefault("events.schema_registry_urls", []string{})
	v.SetDefault("events.topic", "catalog-submissions")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	return ConfigPath(*arg)
}

// ConfigPath prefers CATALOG_CONFIG_FILE over the flag value.
func ConfigPath(flagValue string) string {
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return flagValue
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	c.Fprint(os.Stdout)
}

func (c Config) Fprint(w io.Writer) {
	tamplate := `
	General:
	LogLevel=%q

	API:
	BaseURL=%q
	Timeout=%q
	TLS:
		CA=%q
		Cert=%q
		Key=%q

	Stub:
	HTTPServerAddr=%q

	Events:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q

`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.API.BaseURL,
		c.API.Timeout,
		c.API.TLS.CA,
		c.API.TLS.Cert,
		c.API.TLS.Key,
		c.Stub.HTTPServerAddr,
		c.Events.SeedBrokers,
		c.Events.SchemaRegistryURLs,
		c.Events.Topic,
	)
}

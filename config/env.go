package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "YUCG"

// LoadSecrets loads the given .env files (missing ones are skipped) without
// overriding variables already set, then reads credentials from the
// environment.
func (c *Root) LoadSecrets(envFiles ...string) error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("env file %s: %w", f, err)
		}
	}
	c.Secrets = Secrets{
		HFToken:            os.Getenv("HF_API_TOKEN"),
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
	}
	return nil
}

// NewViper returns a viper instance reading YUCG_* variables, where the
// dotted key sentiment.backend maps to YUCG_SENTIMENT_BACKEND.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds config keys to flags of fs by name. Flags that do not
// exist in fs are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

type overlay struct {
	key   string
	apply func(c *Root, v *viper.Viper, key string)
}

var overlays = []overlay{
	{"pipeline.log_level", func(c *Root, v *viper.Viper, k string) { c.Pipeline.LogLvl = v.GetString(k) }},
	{"pipeline.log_format", func(c *Root, v *viper.Viper, k string) { c.Pipeline.LogFormat = v.GetString(k) }},
	{"pipeline.save_intermediate", func(c *Root, v *viper.Viper, k string) { c.Pipeline.SaveIntermediate = v.GetBool(k) }},
	{"paths.input", func(c *Root, v *viper.Viper, k string) { c.Paths.Input = v.GetString(k) }},
	{"paths.outputs", func(c *Root, v *viper.Viper, k string) { c.Paths.Outputs = v.GetString(k) }},
	{"sentiment.backend", func(c *Root, v *viper.Viper, k string) { c.Sentiment.Backend = v.GetString(k) }},
	{"sentiment.compound_mode", func(c *Root, v *viper.Viper, k string) { c.Sentiment.CompoundMode = v.GetString(k) }},
	{"sentiment.pos_threshold", func(c *Root, v *viper.Viper, k string) { c.Sentiment.PosThreshold = v.GetFloat64(k) }},
	{"sentiment.neg_threshold", func(c *Root, v *viper.Viper, k string) { c.Sentiment.NegThreshold = v.GetFloat64(k) }},
	{"services.classifier.url", func(c *Root, v *viper.Viper, k string) { c.Services.Classifier.URL = v.GetString(k) }},
	{"services.classifier.model", func(c *Root, v *viper.Viper, k string) { c.Services.Classifier.Model = v.GetString(k) }},
	{"analysis.subject", func(c *Root, v *viper.Viper, k string) { c.Analysis.Subject = v.GetString(k) }},
	{"reddit.reference", func(c *Root, v *viper.Viper, k string) { c.Reddit.Reference = v.GetString(k) }},
	{"server.port", func(c *Root, v *viper.Viper, k string) { c.Server.Port = v.GetInt(k) }},
}

// Overlay copies every key set in v (environment or changed flag) onto c.
func (c *Root) Overlay(v *viper.Viper) {
	for _, o := range overlays {
		if v.IsSet(o.key) {
			o.apply(c, v, o.key)
		}
	}
}

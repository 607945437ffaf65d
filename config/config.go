package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Service struct {
	URL   string `yaml:"url"`
	Model string `yaml:"model,omitempty"`
}
type Services struct {
	Classifier Service `yaml:"classifier"`
	Reddit     struct {
		URL       string `yaml:"url"`
		TokenURL  string `yaml:"token_url"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"reddit"`
}
type Sentiment struct {
	Backend      string  `yaml:"backend"` // lexicon | classifier
	CompoundMode string  `yaml:"compound_mode"`
	PosThreshold float64 `yaml:"pos_threshold"`
	NegThreshold float64 `yaml:"neg_threshold"`
}
type Analysis struct {
	Subject         string   `yaml:"subject"`
	OtherServices   []string `yaml:"other_services"`
	CustomStopwords []string `yaml:"custom_stopwords"`
	WordStats       struct {
		Role     string `yaml:"role"`
		MinCount int    `yaml:"min_count"`
	} `yaml:"word_stats"`
	Groups struct {
		MinCount int                 `yaml:"min_count"`
		Defs     map[string][]string `yaml:"defs"`
		Exclude  []string            `yaml:"exclude_words"`
	} `yaml:"groups"`
}
type Plot struct {
	Title          string            `yaml:"title"`
	XLabel         string            `yaml:"xlabel"`
	YLabel         string            `yaml:"ylabel"`
	TopNLabels     int               `yaml:"top_n_labels"`
	MinYGap        float64           `yaml:"min_y_gap"`
	MaxLabelLen    int               `yaml:"max_label_len"`
	LabelOverrides map[string]string `yaml:"label_overrides"`
}
type Reddit struct {
	DaysBack    int    `yaml:"days_back"`
	Sort        string `yaml:"sort"`
	TimeFilter  string `yaml:"time_filter"`
	KeynessTopN int    `yaml:"keyness_top_n"`
	TopPosts    int    `yaml:"top_posts"`
	Reference   string `yaml:"reference"` // word<TAB>count table; empty uses the built-in one
}
type Server struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Secrets come from the environment (or .env), never from the YAML file.
type Secrets struct {
	HFToken            string
	RedditClientID     string
	RedditClientSecret string
}

type Root struct {
	Pipeline struct {
		Name             string `yaml:"name"`
		Version          string `yaml:"version"`
		LogLvl           string `yaml:"log_level"`
		LogFormat        string `yaml:"log_format"`
		SaveIntermediate bool   `yaml:"save_intermediate"`
	} `yaml:"pipeline"`
	Paths struct {
		Input   string `yaml:"input"`
		Outputs string `yaml:"outputs"`
	} `yaml:"paths"`
	Sentiment Sentiment `yaml:"sentiment"`
	Services  Services  `yaml:"services"`
	Analysis  Analysis  `yaml:"analysis"`
	Plot      Plot      `yaml:"plot"`
	Reddit    Reddit    `yaml:"reddit"`
	Server    Server    `yaml:"server"`
	Secrets   Secrets   `yaml:"-"`
}

// Load reads path, or when path is empty the first of
// config/<CONFIG_ENV|dev>/config.yaml and src/shared/config.yaml that
// exists. The file is decoded over Default(), so omitted keys keep their
// defaults and maps are merged. With no file at all, Default() is returned.
func Load(path string) (*Root, error) {
	cfg := Default()
	guess := []string{path}
	if path == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		guess = []string{
			filepath.Join("config", env, "config.yaml"),
			filepath.Join("src", "shared", "config.yaml"),
		}
	}
	for _, p := range guess {
		f, err := os.Open(p)
		if errors.Is(err, os.ErrNotExist) && path == "" {
			continue
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, nil
	}
	return cfg, nil
}

func (c *Root) Validate() error {
	var errs []error
	if c.Sentiment.PosThreshold <= c.Sentiment.NegThreshold {
		errs = append(errs, fmt.Errorf("sentiment: pos_threshold %v must exceed neg_threshold %v",
			c.Sentiment.PosThreshold, c.Sentiment.NegThreshold))
	}
	switch c.Sentiment.Backend {
	case BackendLexicon:
	case BackendClassifier:
		if c.Services.Classifier.URL == "" || c.Services.Classifier.Model == "" {
			errs = append(errs, errors.New("services.classifier: url and model are required for the classifier backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("sentiment: unknown backend %q", c.Sentiment.Backend))
	}
	switch c.Sentiment.CompoundMode {
	case "", "winner", "distribution":
	default:
		errs = append(errs, fmt.Errorf("sentiment: unknown compound_mode %q", c.Sentiment.CompoundMode))
	}
	if c.Analysis.WordStats.MinCount < 1 {
		errs = append(errs, errors.New("analysis.word_stats.min_count must be at least 1"))
	}
	if c.Analysis.Groups.MinCount < 1 {
		errs = append(errs, errors.New("analysis.groups.min_count must be at least 1"))
	}
	if c.Analysis.Subject == "" {
		errs = append(errs, errors.New("analysis.subject is required"))
	}
	return errors.Join(errs...)
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }

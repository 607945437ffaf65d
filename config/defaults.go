package config

const (
	BackendLexicon    = "lexicon"
	BackendClassifier = "classifier"
)

// Default returns the built-in configuration.
func Default() *Root {
	c := &Root{}
	c.Pipeline.Name = "yucg-verse"
	c.Pipeline.Version = "0.1.0"
	c.Pipeline.LogLvl = "info"
	c.Pipeline.LogFormat = "text"
	c.Paths.Input = "./raw_transcripts"
	c.Paths.Outputs = "./outputs"

	c.Sentiment = Sentiment{
		Backend:      BackendLexicon,
		CompoundMode: "winner",
		PosThreshold: 0.05,
		NegThreshold: -0.05,
	}
	c.Services.Classifier = Service{
		URL:   "https://api-inference.huggingface.co/models",
		Model: "cardiffnlp/twitter-roberta-base-sentiment-latest",
	}
	c.Services.Reddit.URL = "https://oauth.reddit.com"
	c.Services.Reddit.TokenURL = "https://www.reddit.com/api/v1/access_token"
	c.Services.Reddit.UserAgent = "Sentiment Analysis Tool"

	c.Analysis.Subject = "canva"
	c.Analysis.OtherServices = []string{
		"figma", "procreate", "photoshop", "illustrator", "indesign",
		"adobe", "xd", "affinity", "sketch", "powerpoint",
		"google slides", "google docs", "google drive",
		"blender", "fusion360", "davinci resolve", "final cut pro", "nomad sculpt",
	}
	c.Analysis.CustomStopwords = []string{
		"canva", "like", "um", "uh", "yeah", "you", "know",
		"okay", "ok", "sort", "kind", "really", "just",
	}
	c.Analysis.WordStats.Role = "interviewee"
	c.Analysis.WordStats.MinCount = 2
	c.Analysis.Groups.MinCount = 3
	c.Analysis.Groups.Defs = map[string][]string{
		"template(s)": {"template", "templates"},
		"flyer(s)":    {"flyer", "flyers"},
		"poster(s)":   {"poster", "posters"},
		"canva-tools": {"icons", "functionality", "workspace", "tools"},
	}

	c.Plot = Plot{
		Title:       "Word / Word Groups Associated with [Company]: Frequency vs Sentiment",
		XLabel:      "Frequency (number of [Company]-related sentences containing word/group)",
		YLabel:      "Average sentiment towards [Company] (compound)",
		TopNLabels:  18,
		MinYGap:     0.05,
		MaxLabelLen: 12,
		LabelOverrides: map[string]string{
			"beginner-friendly": "beginner",
			"canva tools":       "tools",
		},
	}

	c.Reddit = Reddit{
		DaysBack:    365,
		Sort:        "top",
		TimeFilter:  "year",
		KeynessTopN: 30,
		TopPosts:    100,
	}
	c.Server = Server{Port: 8000, CORSOrigins: []string{"http://localhost:3000"}}
	return c
}

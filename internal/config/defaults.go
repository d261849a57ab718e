package config

const (
	defaultStateDir                 = "~/.local/share/prospector"
	defaultExportDir                = "~/.local/share/prospector/exports"
	defaultLogDir                   = "~/.local/share/prospector/logs"
	defaultUserAgent                = "prospector/0.1.0"
	defaultCatalogMode              = "keyword"
	defaultThreshold                = 70
	defaultTimeWindow               = "week"
	defaultListingLimit             = 100
	defaultRequestIntervalSeconds   = 2.0
	defaultQueryIntervalSeconds     = 2.0
	defaultCommunityIntervalSeconds = 5.0
	defaultContinuationBudget       = 32
	defaultNotifyRequestTimeout     = 10
	defaultNotifyMinMatches         = 1
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

func defaultCommunities() []string {
	return []string{
		"startups",
		"entrepreneur",
		"smallbusiness",
		"SaaS",
		"dataanalysis",
		"datascience",
		"BusinessIntelligence",
		"analytics",
		"artificial",
		"MachineLearning",
	}
}

func defaultPhrases() []string {
	return []string{
		"need machine learning",
		"need ml model",
		"machine learning help",
		"ai model needed",
		"looking for ml",
		"need ai developer",
		"machine learning developer",
		"ai engineer needed",
		"ml engineer needed",
		"machine learning consultation",
		"ai consultation",
		"build ai model",
		"build ml model",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:  defaultStateDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Reddit: Reddit{
			UserAgent: defaultUserAgent,
		},
		Catalog: Catalog{
			Mode:    defaultCatalogMode,
			Phrases: defaultPhrases(),
		},
		Scan: Scan{
			Communities:              defaultCommunities(),
			Threshold:                defaultThreshold,
			TimeWindow:               defaultTimeWindow,
			ListingLimit:             defaultListingLimit,
			RequestIntervalSeconds:   defaultRequestIntervalSeconds,
			QueryIntervalSeconds:     defaultQueryIntervalSeconds,
			CommunityIntervalSeconds: defaultCommunityIntervalSeconds,
			ContinuationBudget:       defaultContinuationBudget,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			MinMatches:     defaultNotifyMinMatches,
			ScanComplete:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

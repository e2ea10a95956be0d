package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phonelens/phonelens/internal/analyzer"
	"github.com/phonelens/phonelens/internal/cache"
	"github.com/phonelens/phonelens/internal/config"
	"github.com/phonelens/phonelens/internal/engine"
	"github.com/phonelens/phonelens/internal/logging"
	"github.com/phonelens/phonelens/internal/provider"
	"github.com/phonelens/phonelens/internal/social"
)

// app carries the per-invocation state every subcommand needs. One instance
// is created per root command, so the package keeps no globals and parallel
// tests never share state.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	logRes logging.PathResult

	output   string
	noCache  bool
	cacheTTL time.Duration // 0 keeps the configured TTL
}

// init validates the persistent flags, loads configuration and wires up
// logging. Version, help and shell completion skip all of it; they must
// work without configuration.
func (a *app) init(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	flags := cmd.Flags()

	output, _ := flags.GetString("output")
	switch output {
	case "", outputText, outputJSON:
	default:
		return fmt.Errorf("%w: --output must be %s or %s, got %q", ErrUsage, outputText, outputJSON, output)
	}

	if ttlRaw, _ := flags.GetString("cache-ttl"); ttlRaw != "" {
		ttl, err := cache.ParseTTL(ttlRaw)
		if err != nil {
			return fmt.Errorf("%w: --cache-ttl: %v", ErrUsage, err)
		}
		a.cacheTTL = ttl
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	noCache, _ := flags.GetBool("no-cache")
	a.noCache = noCache || !cfg.Cache.Enabled

	if output == "" {
		output = outputJSON
		if writerIsTerminal(cmd.OutOrStdout()) {
			output = outputText
		}
	}
	a.output = output

	setupLogging(cmd, a)
	return nil
}

// shutdown releases the log file handle, if logging opened one.
func (a *app) shutdown() error {
	if err := a.logRes.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}

// ttl returns the TTL stamped on newly cached reports.
func (a *app) ttl() time.Duration {
	if a.cacheTTL > 0 {
		return a.cacheTTL
	}
	return a.cfg.Cache.TTLDuration
}

// render writes the report in the invocation's output format.
func (a *app) render(w io.Writer, report *engine.Report) error {
	if a.output == outputJSON {
		return engine.RenderJSON(w, report)
	}
	return engine.RenderText(w, report)
}

// newAnalyzer builds the carrier analyzer. Callers own the Close.
func (a *app) newAnalyzer() (*analyzer.Analyzer, error) {
	return analyzer.New(a.log)
}

// openCache opens the report cache, degrading to no cache when the
// directory is unusable. A broken cache never blocks an analysis.
func (a *app) openCache() *cache.Cache {
	if a.noCache {
		return nil
	}
	dir, err := a.cfg.CacheDir()
	if err != nil {
		a.log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		return nil
	}
	c, err := cache.New(dir, a.log)
	if err != nil {
		a.log.Warn().Err(err).Str("dir", dir).Msg("cache unavailable, continuing without it")
		return nil
	}
	return c
}

// openCacheStrict opens the report cache for the cache maintenance
// commands, where an unusable cache is an error.
func (a *app) openCacheStrict() (*cache.Cache, error) {
	dir, err := a.cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	c, err := cache.New(dir, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", dir, err)
	}
	return c, nil
}

// newChecker builds the social platform checker from config.
func (a *app) newChecker() *social.Checker {
	return social.NewChecker(a.cfg.Social.ToSocial(), a.log)
}

// newAggregator builds the provider aggregator with every enabled provider
// registered. Providers that fail to construct are skipped with a warning.
func (a *app) newAggregator() *provider.Aggregator {
	agg := provider.NewAggregator(a.log)
	register := func(kind provider.Kind, name string, pc config.ProviderConfig) {
		if !pc.Enabled {
			return
		}
		p, err := provider.New(kind, pc.ToProvider(name), a.log)
		if err != nil {
			a.log.Warn().Err(err).Str("provider", name).Msg("provider not available, skipping")
			return
		}
		agg.Register(p)
	}
	register(provider.KindCarrier, "carrier", a.cfg.Providers.Carrier)
	register(provider.KindFraud, "fraud", a.cfg.Providers.Fraud)
	return agg
}

// buildEngine assembles the report engine for one invocation. The returned
// closer releases the analyzer.
func (a *app) buildEngine(withSocial, withProviders bool) (*engine.Engine, func(), error) {
	an, err := a.newAnalyzer()
	if err != nil {
		return nil, nil, err
	}

	params := engine.Params{
		Analyzer:    an,
		Cache:       a.openCache(),
		CacheTTL:    a.ttl(),
		CacheMaxAge: a.cfg.Cache.MaxAgeDuration,
		Logger:      a.log,
	}
	if withSocial {
		if a.cfg.Social.Enabled {
			params.Social = a.newChecker()
		} else {
			a.log.Debug().Msg("social checks disabled in config")
		}
	}
	if withProviders {
		params.Providers = a.newAggregator()
	}

	eng, err := engine.New(params)
	if err != nil {
		an.Close()
		return nil, nil, err
	}
	return eng, an.Close, nil
}

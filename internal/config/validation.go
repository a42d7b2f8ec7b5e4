package config

import (
	"fmt"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

// validate checks the invariants the decoders cannot express.
func validate(cfg *Config) error {
	if cfg.Defaults.Remote == "" {
		return errors.ConfigError("defaults.remote is required").Build()
	}
	if cfg.Defaults.MaxTags == nil {
		return errors.ConfigError("defaults.max-tags is required").Build()
	}
	if *cfg.Defaults.MaxTags < 0 {
		return errors.ConfigError("defaults.max-tags must not be negative").
			WithContext("max_tags", *cfg.Defaults.MaxTags).
			Build()
	}
	if NormalizeBackend(string(cfg.Defaults.Backend)) == "" {
		return errors.ConfigError(fmt.Sprintf("defaults.backend must be %q or %q", BackendGoGit, BackendGit)).
			WithContext("backend", string(cfg.Defaults.Backend)).
			Build()
	}
	if cfg.Retry.Backoff != "" && NormalizeRetryBackoff(string(cfg.Retry.Backoff)) == "" {
		return errors.ConfigError("retry.backoff must be fixed, linear or exponential").
			WithContext("backoff", string(cfg.Retry.Backoff)).
			Build()
	}
	if cfg.Retry.MaxRetries != nil && *cfg.Retry.MaxRetries < 0 {
		return errors.ConfigError("retry.max-retries must not be negative").Build()
	}
	if cfg.BinList.Enabled() && len(cfg.BinList.ExtractCmd) > 0 && cfg.BinList.ExtractCmd[0] == "" {
		return errors.ConfigError("bin-list.extract-cmd program must not be empty").Build()
	}

	for i, repo := range cfg.Repos {
		if repo.Path == "" {
			return errors.ConfigError(fmt.Sprintf("repos[%d].path is required", i)).Build()
		}
		if repo.MaxTags != nil && *repo.MaxTags < 0 {
			return errors.ConfigError(fmt.Sprintf("repos[%d].max-tags must not be negative", i)).
				WithContext("path", repo.Path).
				Build()
		}
	}
	return nil
}

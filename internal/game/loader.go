package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/game/pool files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/configs
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) GamePath(game string) string {
	return filepath.Join(p.BaseDir, "games", game+".yaml")
}
func (p Paths) PoolPath(game, pool string) string {
	return filepath.Join(p.BaseDir, "games", game, "pools", pool+".yaml")
}

// Loader reads YAML configs and merges default → game → pool.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "game" or "game/pool"
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Files lists the files that make up one game/pool, in merge order.
func (l *Loader) Files(game, pool string) []string {
	files := []string{l.paths.DefaultPath()}
	if game != "" {
		files = append(files, l.paths.GamePath(game))
		if pool != "" {
			files = append(files, l.paths.PoolPath(game, pool))
		}
	}
	return files
}

// LoadMerged loads and merges default → game → pool (game and pool optional).
// It returns the merged RawConfig (without validation).
func (l *Loader) LoadMerged(game, pool string) (RawConfig, error) {
	key := cacheKey(game, pool)
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	// Read files from disk
	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if game != "" {
		gameCfg, err := readYAML(l.paths.GamePath(game)) // game file may not exist
		if err != nil {
			return RawConfig{}, fmt.Errorf("read game %q: %w", game, err)
		}
		merged = mergeRaw(merged, gameCfg)
		l.store(cacheKey(game, ""), merged)

		if pool != "" {
			poolCfg, err := readYAML(l.paths.PoolPath(game, pool)) // pool file optional
			if err != nil {
				return RawConfig{}, fmt.Errorf("read pool %q: %w", pool, err)
			}
			merged = mergeRaw(merged, poolCfg)
		}
	}

	l.store(key, merged)
	return merged, nil
}

func (l *Loader) store(key string, cfg RawConfig) {
	l.mu.Lock()
	l.cache[key] = cfg
	l.mu.Unlock()
}

// Invalidate clears loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

func cacheKey(game, pool string) string {
	if pool == "" {
		return game
	}
	return game + "/" + pool
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Item lists in 'b' replace those in 'a'. The result shares no maps with
// either input, so cached configs stay untouched.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	// top-level scalars
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// draw
	if b.Draw.Tier3Pity != nil {
		out.Draw.Tier3Pity = b.Draw.Tier3Pity
	}
	if b.Draw.Tier2Pity != nil {
		out.Draw.Tier2Pity = b.Draw.Tier2Pity
	}
	out.Draw.Tiers = make(map[string]*TierCfg, len(a.Draw.Tiers))
	for name, t := range a.Draw.Tiers {
		if t == nil {
			continue
		}
		c := *t
		out.Draw.Tiers[name] = &c
	}
	for name, t := range b.Draw.Tiers {
		if t == nil {
			continue
		}
		cur, ok := out.Draw.Tiers[name]
		if !ok {
			c := *t
			out.Draw.Tiers[name] = &c
			continue
		}
		if t.Probability != nil {
			cur.Probability = t.Probability
		}
		if len(t.Items) > 0 {
			cur.Items = append([]ItemCfg(nil), t.Items...)
		}
	}

	// tokens
	switch {
	case out.Tokens == nil && b.Tokens != nil:
		c := *b.Tokens
		out.Tokens = &c
	case out.Tokens != nil && b.Tokens != nil:
		c := *out.Tokens
		if b.Tokens.Name != "" {
			c.Name = b.Tokens.Name
		}
		if b.Tokens.PerDraw != nil {
			c.PerDraw = b.Tokens.PerDraw
		}
		if b.Tokens.PerTenDraw != nil {
			c.PerTenDraw = b.Tokens.PerTenDraw
		}
		out.Tokens = &c
	}

	// rewards
	switch {
	case out.Rewards == nil && b.Rewards != nil:
		c := *b.Rewards
		c.Codes = mergeCodes(nil, b.Rewards.Codes)
		out.Rewards = &c
	case out.Rewards != nil && b.Rewards != nil:
		c := *out.Rewards
		if b.Rewards.StartingBalance != nil {
			c.StartingBalance = b.Rewards.StartingBalance
		}
		if b.Rewards.SignIn != nil {
			c.SignIn = b.Rewards.SignIn
		}
		if b.Rewards.Timezone != "" {
			c.Timezone = b.Rewards.Timezone
		}
		c.Codes = mergeCodes(out.Rewards.Codes, b.Rewards.Codes)
		out.Rewards = &c
	}

	return out
}

func mergeCodes(a, b map[string]CodeCfg) map[string]CodeCfg {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]CodeCfg, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

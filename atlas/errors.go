package atlas

import "github.com/kairoui/engine/kairoerr"

// Validate checks that cfg describes a usable atlas layout, returning an
// InvalidArgument error describing the first problem found.
func (cfg ManagerConfig) Validate() error {
	if cfg.PageSize < 64 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: PageSize must be at least 64")
	}
	if cfg.PageSize > 8192 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: PageSize must be at most 8192")
	}
	if cfg.PageSize&(cfg.PageSize-1) != 0 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: PageSize must be a power of two")
	}
	if cfg.CellSize < 4 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: CellSize must be at least 4")
	}
	if cfg.CellSize > cfg.PageSize {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: CellSize must not exceed PageSize")
	}
	if cfg.Padding < 0 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: Padding must be non-negative")
	}
	if cfg.MaxPages < 1 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: MaxPages must be at least 1")
	}
	if cfg.Range <= 0 {
		return kairoerr.New(kairoerr.InvalidArgument, "atlas: Range must be positive")
	}
	return nil
}

// Package config loads environment-driven settings.
//
// Dotenv files are read with [github.com/subosito/gotenv] and overlaid by
// the process environment; the merged set is parsed into tagged structs by
// [github.com/caarlos0/env/v11].
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	log := logger.New(cfg.Log)
//
// Applications with extra settings embed Config in their own struct and
// call LoadAs.
package config

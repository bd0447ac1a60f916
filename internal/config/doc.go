// Package config provides the configuration system for hexview.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← HEXVIEW_*
//	├─────────────────────────────┤
//	│  3. Startup Script          │  ← hexview.set() in init.lua
//	├─────────────────────────────┤
//	│  2. User Config File        │  ← $XDG_CONFIG_HOME/hexview/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - layer: layer stacking and merging
//   - loader: TOML files and environment variables
//   - watcher: fsnotify-based live reload
//
// # Basic Usage
//
//	cfg := config.New()
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	view := cfg.View()
//	fmt.Println(view.Batch, view.IdleSleep)
//
// # Live Reload
//
// With the watcher enabled, edits to the user file replace the user layer
// and are announced on Changes. The receiver re-reads the sections it
// cares about.
//
//	for ch := range cfg.Changes() {
//	    if ch.Err != nil {
//	        log.Printf("config: %v", ch.Err)
//	        continue
//	    }
//	    applyTheme(cfg.Theme())
//	}
package config

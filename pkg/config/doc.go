// Package config loads f2llm configuration with koanf.
//
// Layers, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/f2llm/config.toml
//  3. an explicit file passed with --config (TOML, or YAML by extension)
//  4. environment variables, F2LLM_<SECTION>_<KEY>
//     (F2LLM_WALK_READ_WORKERS sets walk.read_workers)
//  5. LoadOptions.Overrides, which the cmd package fills from flags
package config

// Package config loads and writes the tapcalc configuration file.
//
// Settings come from a YAML file and are overridden by TAPCALC_* environment
// variables. A missing file is not an error: environment variables and the
// built-in defaults are used instead.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/tapcalc/config.yaml or $HOME/.config/tapcalc/config.yaml
//   - macOS: $HOME/.config/tapcalc/config.yaml
//   - Windows: %LOCALAPPDATA%\tapcalc\config.yaml
//
// # Usage Example
//
//	path, _ := config.GetConfigPath()
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := calcclient.New(cfg.Endpoint.URL, calcclient.WithTimeout(cfg.Endpoint.Timeout))
package config

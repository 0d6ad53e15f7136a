// Package config holds the two input surfaces of the harness: the JSON
// run descriptor naming the canisters under test, and the layered YAML
// settings controlling how the harness drives dfx.
//
// Settings are merged in three layers, most specific last: built-in
// defaults, the user file at ~/.config/dolphinex/config.yaml, and the
// project file at ./.dolphinex/config.yaml.
package config

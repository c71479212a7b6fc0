// Package config defines the environment-driven configuration structs
// shared by the server commands. All structs carry cleanenv tags and are
// populated with cleanenv.ReadEnv.
package config

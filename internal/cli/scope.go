package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdepot/internal/app"
	"debdepot/internal/types"
)

// scopeOptions backs the persistent flags every command shares: the
// profile fields, cache and sources locations, and HTTP behavior.
type scopeOptions struct {
	OS          string
	Type        string
	Distro      string
	Component   string
	Arch        string
	Cache       string
	Sources     string
	Repos       []string
	Profiles    string
	Profile     string
	HTTPTimeout int
}

func registerScopeFlags(cmd *cobra.Command, opts *scopeOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.OS, "os-id", "", "OS id (defaults to /etc/os-release)")
	flags.StringVar(&opts.Type, "type", "deb", "Package type")
	flags.StringVar(&opts.Distro, "distro", "", "Distribution codename (defaults to /etc/os-release)")
	flags.StringVar(&opts.Component, "component", "main", "Repository component")
	flags.StringVar(&opts.Arch, "arch", debArch(), "Package architecture")
	flags.StringVar(&opts.Cache, "cache", defaultCachePath(), "Package cache location")
	flags.StringVar(&opts.Sources, "sources", "/etc/apt/sources.list", "Sources list path")
	flags.StringSliceVar(&opts.Repos, "repo", nil, "Extra repository URL (repeatable)")
	flags.StringVar(&opts.Profiles, "profiles", "", "Profiles file path")
	flags.StringVar(&opts.Profile, "profile", "", "Named profile to apply")
	flags.IntVar(&opts.HTTPTimeout, "http-timeout", 30, "HTTP timeout in seconds")
	_ = viper.BindPFlag("os_id", flags.Lookup("os-id"))
	_ = viper.BindPFlag("type", flags.Lookup("type"))
	_ = viper.BindPFlag("distro", flags.Lookup("distro"))
	_ = viper.BindPFlag("component", flags.Lookup("component"))
	_ = viper.BindPFlag("arch", flags.Lookup("arch"))
	_ = viper.BindPFlag("cache", flags.Lookup("cache"))
	_ = viper.BindPFlag("sources", flags.Lookup("sources"))
	_ = viper.BindPFlag("repos", flags.Lookup("repo"))
	_ = viper.BindPFlag("profiles", flags.Lookup("profiles"))
	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("http_timeout", flags.Lookup("http-timeout"))
}

// profileScope splits the profile inputs into the configured baseline
// and the explicitly set flag values, so a named profile entry can sit
// between them in precedence.
func profileScope(cmd *cobra.Command, opts *scopeOptions) app.ProfileScope {
	defaults := types.Profile{
		OS:        viper.GetString("os_id"),
		Type:      types.PackageType(viper.GetString("type")),
		Distro:    viper.GetString("distro"),
		Component: viper.GetString("component"),
		Arch:      viper.GetString("arch"),
	}
	overrides := types.Profile{}
	if flagChanged(cmd, "os-id") {
		overrides.OS = opts.OS
	}
	if flagChanged(cmd, "type") {
		overrides.Type = types.PackageType(opts.Type)
	}
	if flagChanged(cmd, "distro") {
		overrides.Distro = opts.Distro
	}
	if flagChanged(cmd, "component") {
		overrides.Component = opts.Component
	}
	if flagChanged(cmd, "arch") {
		overrides.Arch = opts.Arch
	}
	return app.ProfileScope{
		Defaults:     defaults,
		Overrides:    overrides,
		ProfilesPath: resolveString(cmd, opts.Profiles, "profiles", "profiles"),
		ProfileName:  resolveString(cmd, opts.Profile, "profile", "profile"),
	}
}

func newAppService(cmd *cobra.Command, opts *scopeOptions) app.Service {
	return app.NewService(
		resolveString(cmd, opts.Cache, "cache", "cache"),
		resolveInt(cmd, opts.HTTPTimeout, "http_timeout", "http-timeout"),
	)
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "debdepot.db"
	}
	return filepath.Join(dir, "debdepot", "packages.db")
}

// debArch maps the runtime architecture to its Debian name.
func debArch() string {
	switch runtime.GOARCH {
	case "386":
		return "i386"
	case "arm":
		return "armhf"
	case "ppc64le":
		return "ppc64el"
	default:
		return runtime.GOARCH
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}

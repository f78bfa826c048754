package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// applyConfigFlagOverrides copies every flag the user set explicitly onto
// the config key it maps to in keys. Unset flags leave file and env values
// in place.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, keys map[string]string) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		setFromFlag(cmd.Flags(), v, f, key)
	})
}

func setFromFlag(fs *pflag.FlagSet, v *viper.Viper, f *pflag.Flag, key string) {
	switch f.Value.Type() {
	case "bool":
		if val, err := fs.GetBool(f.Name); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := fs.GetInt(f.Name); err == nil {
			v.Set(key, val)
		}
	case "stringSlice":
		if val, err := fs.GetStringSlice(f.Name); err == nil {
			v.Set(key, val)
		}
	default:
		v.Set(key, f.Value.String())
	}
}

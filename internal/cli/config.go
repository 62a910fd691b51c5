package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlags lets each persistent flag override the viper key it maps to.
// Keys keep their env and default values while the flag is unset.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if f := cmd.PersistentFlags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

package cmd

import (
	"github.com/gobeaver/finfo/jsonw"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	describeCmd := &cobra.Command{
		Use:     "describe [-i OPLIST] [FILE...]",
		Aliases: []string{"info"},
		Short:   "Print a JSON report for each file",
		Example: `  finfo describe /etc/hosts
  finfo describe -i stat,digest --digest xxhash big.iso
  finfo describe -i lstat,ls:lstat+readlink /usr/bin
  finfo describe -i stat,recursive /srv/data`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, d, err := a.describer()
			if err != nil {
				return err
			}

			w := jsonw.New(cmd.OutOrStdout())
			if err := d.Describe(cmd.Context(), w, args, table); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	describeCmd.Flags().StringP("info", "i", "", "comma-separated operations (default from BEAVER_FINFO_INFO, else stat)")
	describeCmd.Flags().String("digest", "", "digest algorithm: md5, sha1, sha256, sha512, crc32, xxhash")

	return describeCmd
}

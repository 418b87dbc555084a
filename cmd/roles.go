package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/criteria"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the job roles and their requirements",
	Run: func(_ *cobra.Command, _ []string) {
		registry, err := buildRegistry(viper.GetViper())
		if err != nil {
			log.Fatalf("loading job roles: %v", err)
		}
		printRoles(os.Stdout, registry)
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(w io.Writer, registry *criteria.Registry) {
	for _, name := range registry.Names() {
		role, _ := registry.Lookup(name)
		fmt.Fprintf(w, "%s\n  skills:    %s\n  languages: %s\n",
			role.Name(),
			strings.Join(role.Skills(), ", "),
			strings.Join(role.Languages(), ", "),
		)
	}
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

// printView prints the json fields of v as key: value lines
func printView(cmd *cobra.Command, v interface{}) {
	fields := structs.Map(v)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Println(fmt.Sprintf("%s: %v", k, fields[k]))
	}
}

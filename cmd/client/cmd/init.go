// cmd/client/cmd/init.go
package cmd

import (
	"doctracker/cmd/client/cmd/document"
)

func init() {
	rootCmd.AddCommand(document.DocumentCmd)
	document.DocumentCmd.AddCommand(document.ListCmd)
	document.DocumentCmd.AddCommand(document.GetCmd)
	document.DocumentCmd.AddCommand(document.CreateCmd)
	document.DocumentCmd.AddCommand(document.EditCmd)
	document.DocumentCmd.AddCommand(document.DeleteCmd)
	document.DocumentCmd.AddCommand(document.ExportCmd)
	document.DocumentCmd.AddCommand(document.StatusesCmd)
	document.DocumentCmd.AddCommand(document.TypesCmd)

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/javaclassfile/classfile"
	"github.com/javaclassfile/classfile/utils"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd *cobra.Command
	rootCmd = &cobra.Command{
		Use: "classdump <file...>",
		Run: func(cmd *cobra.Command, args []string) {
			showAttrs := utils.Must1(rootCmd.PersistentFlags().GetBool("attrs"))
			jsonOutput := utils.Must1(rootCmd.PersistentFlags().GetBool("json"))
			configPath := utils.Must1(rootCmd.PersistentFlags().GetString("config"))

			files := args
			if configPath != "" {
				cfg, err := loadBatchConfig(configPath)
				if err != nil {
					exitWithError("could not read config %s: %v", configPath, err)
				}
				files = cfg.Files
				showAttrs = showAttrs || cfg.ShowAttrs
				jsonOutput = jsonOutput || cfg.JSONOutput
			}

			if len(files) == 0 {
				rootCmd.Usage()
				os.Exit(1)
			}

			for _, filename := range files {
				if err := dumpFile(filename, showAttrs, jsonOutput); err != nil {
					exitWithError("%s: %v", filename, err)
				}
			}
		},
	}
	rootCmd.PersistentFlags().Bool("attrs", false, "Print each method's opaque Code attribute bytes as opcode mnemonics.")
	rootCmd.PersistentFlags().Bool("json", false, "Print a JSON summary instead of text.")
	rootCmd.PersistentFlags().String("config", "", "A YAML file listing class files to decode in one batch run.")
	utils.Must(rootCmd.Execute())
}

func dumpFile(filename string, showAttrs, jsonOutput bool) error {
	var r io.Reader
	if filename == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	cls, err := classfile.Decode(r)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cls)
	}
	printSummary(cls, showAttrs)
	return nil
}

func exitWithError(msg string, args ...any) {
	msg = fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	os.Exit(1)
}

func printJSON(cls *classfile.Class) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summarize(cls))
}

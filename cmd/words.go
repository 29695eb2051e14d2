package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"antiseptic.dev/pkg/antiseptic/internal/domain"
	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// wordsCmd represents the words command.
var wordsCmd = newWordsCmd()

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <word...>",
		Short: "Look up individual words",
		Long: `Look up words in the configured dictionaries and print whether each one is
known. Unknown words come with a suggestion unless --no-suggest is set.
Exits with 1 when any word is unknown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dictArgs, err := dictionaryArgs()
			if err != nil {
				return &ExitError{Code: m.ExitFatal, Err: err}
			}

			code, err := workflow.Words(cmd.Context(), domain.WordsArgs{
				DictionaryArgs: dictArgs,
				Words:          args,
				Suggest:        !viper.GetBool(noSuggestFlagName),
			})

			return exitWith(code, err)
		},
	}
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

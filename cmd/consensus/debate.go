package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quorumlab/consensuskit/debate"
	"github.com/quorumlab/consensuskit/model"
	"github.com/quorumlab/consensuskit/profile"
)

var (
	adversarialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	politeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

const debateLongDesc = `Run a two-persona AI debate on a topic.

Two AI alter egos argue a topic in short exchanges: the first persona is
adversarial, the second polite. Personas come from a YAML file (--profiles)
or fall back to the built-in pair. Every message is prefixed with the
simulation marker so the output cannot be mistaken for real quotes.

Example:
  consensus debate "Universal basic income" --exchanges 5
  consensus debate "Nuclear energy" --profiles personas.yaml`

func newDebateCmd(root *rootOptions) *cobra.Command {
	var (
		profilesPath string
		exchanges    int
		modelName    string
	)

	cmd := &cobra.Command{
		Use:   "debate <topic>",
		Short: "Run a two-persona AI debate",
		Long:  debateLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			adversarial, polite, err := loadPersonas(profilesPath)
			if err != nil {
				return err
			}
			client, err := newClient(cfg, root)
			if err != nil {
				return err
			}

			opts := []debate.Option{debate.WithLogger(root.logger())}
			if modelName != "" {
				opts = append(opts, debate.WithModel(model.Name(modelName)))
			}
			d := debate.New(client, adversarial, polite, args[0], opts...)

			out := cmd.OutOrStdout()
			opening, err := d.Start(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n\n", politeStyle.Render(polite.Name+":"), opening)

			for i := 0; i < exchanges; i++ {
				exchange, err := d.NextExchange(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n\n", adversarialStyle.Render(adversarial.Name+":"), exchange.Adversarial)
				fmt.Fprintf(out, "%s %s\n\n", politeStyle.Render(polite.Name+":"), exchange.Polite)
			}

			totals := client.Session().Totals()
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf(
				"%d exchanges | tokens in %d, out %d | cost $%.4f",
				d.Exchanges(), totals.TokensIn, totals.TokensOut, totals.Cost)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&profilesPath, "profiles", "p", "", "YAML file with two personas (adversarial first)")
	cmd.Flags().IntVarP(&exchanges, "exchanges", "n", 3, "number of exchanges after the opening")
	cmd.Flags().StringVarP(&modelName, "model", "m", "", "model both personas speak through")
	return cmd
}

// loadPersonas reads the persona pair, adversarial first, falling back to
// the built-in pair when no file is given.
func loadPersonas(path string) (profile.Profile, profile.Profile, error) {
	if path == "" {
		adversarial, polite := profile.Defaults()
		return adversarial, polite, nil
	}
	personas, err := profile.LoadFile(path)
	if err != nil {
		return profile.Profile{}, profile.Profile{}, err
	}
	if len(personas) != 2 {
		return profile.Profile{}, profile.Profile{}, fmt.Errorf("profiles %s: need exactly 2 personas, got %d", path, len(personas))
	}
	return personas[0], personas[1], nil
}

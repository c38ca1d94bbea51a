package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reporef/reporef/internal/catalog"
	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/config"
	"github.com/reporef/reporef/internal/rerrors"
	"github.com/reporef/reporef/internal/resolve"
	"github.com/reporef/reporef/internal/serialize"
)

var (
	resolveNoRecurse bool
	resolveDebug     bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve QUESTION",
	Short: "Resolve a reference through the provider resolver chain",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveNoRecurse, "no-recurse", false, "Stop after the first resolver step")
	resolveCmd.Flags().BoolVar(&resolveDebug, "debug", false, "Print which resolver produced each answer")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.ExtraDataverseInstallations, cfg.ExtraZenodoInstallations, cfg.ExtraFigshareInstallations)
	if err != nil {
		return err
	}
	registry := resolve.NewDefaultRegistry(cfg, cat)

	question, err := resolve.ParseQuestion(args[0])
	if err != nil {
		return &exitError{code: 1}
	}

	steps, err := resolve.Run(cmd.Context(), registry, question, !resolveNoRecurse)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), rerrors.NewFormatter(noColor).Format(err))
		return &exitError{code: 2}
	}

	for _, step := range steps {
		raw, err := serialize.ToJSON(step.Answer)
		if err != nil {
			return err
		}
		if resolveDebug {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", step.Resolver, raw)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		}
	}

	if len(steps) > 0 && steps[len(steps)-1].Answer.Level == certainty.DoesNotExist {
		return &exitError{code: 1}
	}
	return nil
}

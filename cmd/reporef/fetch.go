package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/reporef/reporef/internal/catalog"
	"github.com/reporef/reporef/internal/certainty"
	"github.com/reporef/reporef/internal/config"
	"github.com/reporef/reporef/internal/fetch"
	"github.com/reporef/reporef/internal/rerrors"
	"github.com/reporef/reporef/internal/resolve"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch QUESTION OUT_DIR",
	Short: "Resolve a reference and fetch its content into OUT_DIR",
	Args:  cobra.ExactArgs(2),
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	question, outputDir := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.ExtraDataverseInstallations, cfg.ExtraZenodoInstallations, cfg.ExtraFigshareInstallations)
	if err != nil {
		return err
	}
	registry := resolve.NewDefaultRegistry(cfg, cat)

	q, err := resolve.ParseQuestion(question)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return &exitError{code: 1}
	}

	steps, err := resolve.Run(cmd.Context(), registry, q, true)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), rerrors.NewFormatter(noColor).Format(err))
		return &exitError{code: 2}
	}
	if len(steps) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: reference did not resolve to anything")
		return &exitError{code: 1}
	}

	final := steps[len(steps)-1].Answer
	if final.Level == certainty.DoesNotExist {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: reference does not exist")
		return &exitError{code: 1}
	}
	if final.Descriptor == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: reference resolved without narrowing to a fetchable descriptor")
		return &exitError{code: 1}
	}

	var progress *mpb.Progress
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if isTTY {
		progress = mpb.New(mpb.WithOutput(cmd.OutOrStdout()), mpb.WithWidth(40))
	}

	dispatcher := fetch.NewDefaultDispatcher(cfg, progress)

	if err := fetch.PrepareOutputDir(outputDir); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), rerrors.NewFormatter(noColor).Format(err))
		return &exitError{code: 1}
	}

	f := dispatcher.For(final.Descriptor.Kind())
	if f == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: no fetcher registered for %s\n", final.Descriptor.Kind())
		return &exitError{code: 1}
	}

	err = fetch.WithOutputLock(cmd.Context(), outputDir, func() error {
		return f.Fetch(cmd.Context(), final.Descriptor, outputDir)
	})
	if progress != nil {
		progress.Wait()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), rerrors.NewFormatter(noColor).Format(err))
		if category, ok := rerrors.CategoryOf(err); ok && (category == rerrors.CategoryIO || category == rerrors.CategoryValidation) {
			return &exitError{code: 1}
		}
		return &exitError{code: 2}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fetched into %s\n", outputDir)
	return nil
}

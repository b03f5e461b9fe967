package cli

import (
	"github.com/spf13/cobra"

	"github.com/lucass-carneiro/surge-stage/internal/config"
	"github.com/lucass-carneiro/surge-stage/internal/deploy"
	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/postprocess"
)

// currentSettings returns the loaded settings with flag overrides applied.
func currentSettings(cmd *cobra.Command) (config.Settings, error) {
	s, err := cfg.Settings()
	if err != nil {
		return config.Settings{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("prefix") || s.Prefix == "" {
		s.Prefix = flagPrefix
	}
	if flags.Changed("output") || s.Output == "" {
		s.Output = flagOutput
	}
	if flags.Changed("link") {
		s.Link = flagLink
	}
	return s, nil
}

// newRequest builds the request for one invocation. configuration may be
// empty for commands that do not read the build tree.
func newRequest(cmd *cobra.Command, configuration, module string) (locator.Request, error) {
	s, err := currentSettings(cmd)
	if err != nil {
		return locator.Request{}, err
	}

	req := locator.Request{
		RootPrefix:      s.Prefix,
		Module:          module,
		OutputDirectory: s.Output,
	}
	if configuration != "" {
		c, err := locator.ParseConfiguration(configuration)
		if err != nil {
			return locator.Request{}, deploy.Usage(err)
		}
		req.Configuration = c
	}
	return req, nil
}

// newOrchestrator resolves the host profile once and wires the orchestrator.
func newOrchestrator(cmd *cobra.Command) (*deploy.Orchestrator, error) {
	s, err := currentSettings(cmd)
	if err != nil {
		return nil, err
	}

	profile, err := platform.Current()
	if err != nil {
		return nil, err
	}
	if s.Link != "" {
		strategy, err := platform.ParseLinkStrategy(s.Link)
		if err != nil {
			return nil, deploy.Usage(err)
		}
		profile = profile.WithStrategy(strategy)
	}

	o := deploy.NewOrchestrator(profile, deploy.Options{
		PostProcess: postprocess.New(s.PostProcess.Command, s.PostProcess.Args),
		Logger:      logger,
	})
	o.Launcher().Stdout = cmd.OutOrStdout()
	o.Launcher().Stderr = cmd.ErrOrStderr()
	return o, nil
}

// execute runs op for the request described by the positional arguments and
// prints its report.
func execute(cmd *cobra.Command, op deploy.Operation, configuration, module string) error {
	req, err := newRequest(cmd, configuration, module)
	if err != nil {
		return err
	}
	o, err := newOrchestrator(cmd)
	if err != nil {
		return err
	}

	res, err := o.Execute(cmd.Context(), op, req)
	if err != nil {
		return err
	}
	if res.Report != nil {
		printReport(cmd.OutOrStdout(), res.Report)
	}
	return nil
}

// Package application wires the validators to their collaborators and
// orchestrates tiered runs.
package application

import (
	"fmt"
	"os"
	"time"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/validators"
)

// RunOptions adjusts a multi-validator run.
type RunOptions struct {
	Skip []string
}

// ValidatorOptions adjusts a direct single-validator invocation.
type ValidatorOptions struct {
	SpecPath string
	ImplPath string
}

// RunnerService executes validators in two declared tiers, isolating
// per-validator failures and folding everything into one RunSummary.
// Execution is fully sequential; no tier starts before the prior tier's
// validators have all completed or errored.
type RunnerService struct {
	scanner  domain.ProjectScanner
	git      domain.GitInspector
	loader   domain.ConfigLoader
	registry map[domain.ValidatorKey]validators.Validator
	spec     *validators.SpecAdherenceValidator
}

// NewRunnerService builds the compile-time validator registry. Every key
// in domain.ValidatorKeys gets exactly one entry; an unhandled key is a
// programming error surfaced by the panic below.
func NewRunnerService(scanner domain.ProjectScanner, git domain.GitInspector, loader domain.ConfigLoader, cfg domain.ProjectConfig) *RunnerService {
	t := cfg.EffectiveThresholds()
	specDir := cfg.SpecDir
	if len(cfg.ExcludePaths) > 0 {
		scanner = &excludingScanner{inner: scanner, exclude: cfg.ExcludePaths}
	}

	spec := validators.NewSpecAdherence(scanner, t, specDir)
	registry := make(map[domain.ValidatorKey]validators.Validator, len(domain.ValidatorKeys))
	for _, key := range domain.ValidatorKeys {
		switch key {
		case domain.KeyCodeQuality:
			registry[key] = validators.NewCodeQuality(scanner, t)
		case domain.KeySecurity:
			registry[key] = validators.NewSecurity(scanner, t)
		case domain.KeyTesting:
			registry[key] = validators.NewTesting(scanner, t, specDir)
		case domain.KeySpecAdherence:
			registry[key] = spec
		case domain.KeyBranchStrategy:
			registry[key] = validators.NewBranchStrategy(git, t, specDir)
		case domain.KeyDocumentation:
			registry[key] = validators.NewDocumentation(scanner, t, specDir)
		default:
			panic(fmt.Sprintf("validator %q has no registry entry", key))
		}
	}

	return &RunnerService{
		scanner:  scanner,
		git:      git,
		loader:   loader,
		registry: registry,
		spec:     spec,
	}
}

// RunAll executes both tiers in declared order.
func (s *RunnerService) RunAll(projectPath string, opts RunOptions) (*domain.RunSummary, error) {
	return s.run(domain.ValidatorKeys, projectPath, opts)
}

// RunTier executes the validators of one tier.
func (s *RunnerService) RunTier(tier int, projectPath string, opts RunOptions) (*domain.RunSummary, error) {
	keys, err := domain.TierOf(tier)
	if err != nil {
		return nil, err
	}
	return s.run(keys, projectPath, opts)
}

// RunSubset executes an explicit list of validators in declared order.
func (s *RunnerService) RunSubset(keys []string, projectPath string, opts RunOptions) (*domain.RunSummary, error) {
	var selected []domain.ValidatorKey
	for _, k := range keys {
		if !domain.IsValidKey(k) {
			return nil, fmt.Errorf("unknown validator %q (valid: %v)", k, domain.ValidatorKeys)
		}
		selected = append(selected, domain.ValidatorKey(k))
	}
	return s.run(selected, projectPath, opts)
}

// RunValidator invokes a single validator directly and returns its
// report. For spec-adherence, explicit spec/implementation paths override
// the conventional layout; a missing path there is an error, not a report.
func (s *RunnerService) RunValidator(key, projectPath string, opts ValidatorOptions) (*domain.ValidatorReport, error) {
	if !domain.IsValidKey(key) {
		return nil, fmt.Errorf("unknown validator %q (valid: %v)", key, domain.ValidatorKeys)
	}

	if domain.ValidatorKey(key) == domain.KeySpecAdherence && (opts.SpecPath != "" || opts.ImplPath != "") {
		specPath, implPath := opts.SpecPath, opts.ImplPath
		if specPath == "" {
			specPath = s.spec.SpecDirFor(projectPath)
		}
		if implPath == "" {
			implPath = projectPath
		}
		return s.spec.ValidatePair(specPath, implPath)
	}
	return s.registry[domain.ValidatorKey(key)].Validate(projectPath)
}

// run executes the given validators sequentially. One validator's failure
// never aborts the run: errors and panics become ERROR entries and the
// next validator still runs.
func (s *RunnerService) run(keys []domain.ValidatorKey, projectPath string, opts RunOptions) (*domain.RunSummary, error) {
	cfg, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	skip := make(map[string]bool)
	for _, k := range cfg.Skip {
		skip[k] = true
	}
	for _, k := range opts.Skip {
		if !domain.IsValidKey(k) {
			return nil, fmt.Errorf("unknown validator %q in skip list (valid: %v)", k, domain.ValidatorKeys)
		}
		skip[k] = true
	}

	summary := &domain.RunSummary{}
	start := time.Now()

	for _, key := range keys {
		if skip[string(key)] {
			summary.Record(string(key), domain.SkippedReport(string(key), "skipped by request"))
			continue
		}
		if reason := s.skipReason(key, projectPath); reason != "" {
			summary.Record(string(key), domain.SkippedReport(string(key), reason))
			continue
		}

		report, err := s.invoke(key, projectPath)
		if err != nil {
			report = domain.ErrorReport(string(key), err.Error())
		}
		summary.Record(string(key), report)
	}

	summary.Duration = time.Since(start)
	summary.Finalize()
	return summary, nil
}

// skipReason reports why a validator cannot run against this project in
// a multi-validator run: missing conventional layout rather than failure.
func (s *RunnerService) skipReason(key domain.ValidatorKey, projectPath string) string {
	switch key {
	case domain.KeySpecAdherence:
		if !dirExists(s.spec.SpecDirFor(projectPath)) {
			return "no spec directory found"
		}
	case domain.KeyBranchStrategy:
		if !s.git.IsRepo(projectPath) {
			return "not a git repository"
		}
	}
	return ""
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// excludingScanner folds the config's exclude_paths into every scan.
type excludingScanner struct {
	inner   domain.ProjectScanner
	exclude []string
}

func (s *excludingScanner) Scan(projectPath string, excludePaths ...string) (*domain.FileSet, error) {
	merged := make([]string, 0, len(s.exclude)+len(excludePaths))
	merged = append(merged, s.exclude...)
	merged = append(merged, excludePaths...)
	return s.inner.Scan(projectPath, merged...)
}

// invoke runs one validator, converting panics into errors so a
// misbehaving analyzer cannot take down the run.
func (s *RunnerService) invoke(key domain.ValidatorKey, projectPath string) (report *domain.ValidatorReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("validator %s panicked: %v", key, r)
		}
	}()
	return s.registry[key].Validate(projectPath)
}

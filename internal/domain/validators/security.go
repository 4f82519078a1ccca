package validators

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specguard/specguard/internal/domain"
	"github.com/specguard/specguard/internal/domain/analysis"
)

// SecurityValidator scans for hardcoded secrets, injection-prone code,
// missing protective layers, and insecure configuration.
type SecurityValidator struct {
	scanner    domain.ProjectScanner
	thresholds domain.Thresholds
}

func NewSecurity(scanner domain.ProjectScanner, t domain.Thresholds) *SecurityValidator {
	return &SecurityValidator{scanner: scanner, thresholds: t}
}

func (v *SecurityValidator) Key() domain.ValidatorKey { return domain.KeySecurity }

func (v *SecurityValidator) Validate(projectPath string) (*domain.ValidatorReport, error) {
	if !dirExists(projectPath) {
		return missingPathReport(v.Key(), projectPath), nil
	}
	files, err := v.scanner.Scan(projectPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}

	code := files.CodeAndTests()
	checks := []domain.CheckResult{
		v.checkSecrets(code),
		v.checkInsecurePatterns(code),
		v.checkSQLInjection(code),
		v.checkXSS(code),
		v.checkInputValidation(files),
		v.checkAuthentication(files),
		v.checkHTTPS(code),
		v.checkConfigSecurity(files),
		v.checkDependencySecurity(files),
		v.checkEnvSecurity(files),
	}
	return Aggregate(v.Key(), projectPath, checks), nil
}

func (v *SecurityValidator) checkSecrets(code []domain.FileRecord) domain.CheckResult {
	details := domain.SecretDetails{}
	for _, f := range code {
		for _, m := range analysis.FindSecrets(f.Content, v.thresholds.SecretMinLength) {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Line: m.Line, Excerpt: m.Text,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Hardcoded Secrets", Status: domain.StatusPass,
			Message: "no hardcoded secrets found",
		}
	}
	details.Hint = "move secrets to environment variables"
	return domain.CheckResult{
		Name: "Hardcoded Secrets", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d hardcoded secret(s) found", len(details.Violations)),
		Details: &details,
	}
}

func (v *SecurityValidator) checkInsecurePatterns(code []domain.FileRecord) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range code {
		for _, m := range analysis.FindPattern(f.Content, analysis.DangerousPatterns) {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Line: m.Line, Excerpt: m.Text,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Insecure Patterns", Status: domain.StatusPass,
			Message: "no dangerous function usage found",
		}
	}
	details.Hint = "replace eval/exec/innerHTML with safe alternatives"
	return domain.CheckResult{
		Name: "Insecure Patterns", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d dangerous call site(s) found", len(details.Violations)),
		Details: &details,
	}
}

func (v *SecurityValidator) checkSQLInjection(code []domain.FileRecord) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range code {
		for _, m := range analysis.FindSQLConcat(f.Content) {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Line: m.Line, Excerpt: m.Text,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "SQL Injection Prevention", Status: domain.StatusPass,
			Message: "no string-built SQL found",
		}
	}
	details.Hint = "use parameterized queries instead of string concatenation"
	return domain.CheckResult{
		Name: "SQL Injection Prevention", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d SQL string construction(s) found", len(details.Violations)),
		Details: &details,
	}
}

func (v *SecurityValidator) checkXSS(code []domain.FileRecord) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range code {
		for _, m := range analysis.FindPattern(f.Content, analysis.XSSSinkPatterns) {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Line: m.Line, Excerpt: m.Text,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "XSS Prevention", Status: domain.StatusPass,
			Message: "no unescaped request data in DOM sinks",
		}
	}
	details.Hint = "escape request data before writing it to the DOM"
	return domain.CheckResult{
		Name: "XSS Prevention", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d DOM sink(s) receive request data", len(details.Violations)),
		Details: &details,
	}
}

// validationLibs are recognized input-validation libraries/schemas.
var validationLibs = []string{
	"joi", "yup", "zod", "ajv", "express-validator", "class-validator",
	"pydantic", "marshmallow", "cerberus", "validator",
}

// checkInputValidation warns (not fails) when request-handling code has
// no recognized validation library nearby.
func (v *SecurityValidator) checkInputValidation(files *domain.FileSet) domain.CheckResult {
	code := files.CodeAndTests()
	if !hasRoutes(code) {
		return domain.CheckResult{
			Name: "Input Validation", Status: domain.StatusPass,
			Message: "no request-handling code found",
		}
	}

	details := domain.PresenceDetails{}
	for _, lib := range validationLibs {
		if projectMentions(files, lib) {
			details.Found = true
			details.Indicators = append(details.Indicators, lib)
		}
	}
	if details.Found {
		return domain.CheckResult{
			Name: "Input Validation", Status: domain.StatusPass,
			Message: fmt.Sprintf("validation library in use: %s", strings.Join(details.Indicators, ", ")),
			Details: &details,
		}
	}
	details.Hint = "add schema validation for request input"
	return domain.CheckResult{
		Name: "Input Validation", Status: domain.StatusWarning,
		Message: "request-handling code without a recognized validation library",
		Details: &details,
	}
}

// authIndicators recognize authentication middleware near routes.
var authIndicators = []string{
	"authenticate", "authorize", "passport", "jwt", "verifytoken",
	"requireauth", "ensureauth", "isauthenticated", "session",
	"middleware/auth", "auth middleware", "bearerauth",
}

// checkAuthentication warns (not fails) when routes exist but no auth
// middleware indicator does.
func (v *SecurityValidator) checkAuthentication(files *domain.FileSet) domain.CheckResult {
	code := files.CodeAndTests()
	if !hasRoutes(code) {
		return domain.CheckResult{
			Name: "Authentication", Status: domain.StatusPass,
			Message: "no route definitions found",
		}
	}

	details := domain.PresenceDetails{}
	for _, f := range code {
		lower := strings.ToLower(f.Content)
		for _, ind := range authIndicators {
			if strings.Contains(lower, ind) {
				details.Found = true
				details.Indicators = appendUnique(details.Indicators, ind)
			}
		}
	}
	if details.Found {
		return domain.CheckResult{
			Name: "Authentication", Status: domain.StatusPass,
			Message: "authentication middleware detected",
			Details: &details,
		}
	}
	details.Hint = "protect routes with authentication middleware"
	return domain.CheckResult{
		Name: "Authentication", Status: domain.StatusWarning,
		Message: "routes defined without visible authentication",
		Details: &details,
	}
}

func (v *SecurityValidator) checkHTTPS(code []domain.FileRecord) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range code {
		for _, m := range analysis.FindInsecureURLs(f.Content) {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Line: m.Line, Excerpt: m.Text,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "HTTPS/TLS", Status: domain.StatusPass,
			Message: "no insecure http:// URLs found",
		}
	}
	details.Hint = "use https:// for non-local endpoints"
	return domain.CheckResult{
		Name: "HTTPS/TLS", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d insecure URL(s) found", len(details.Violations)),
		Details: &details,
	}
}

// secretKeyPattern marks config keys whose values should never be
// literal secrets.
var secretKeyPattern = regexp.MustCompile(`(?i)(?:password|passwd|secret|token|api[_-]?key|private[_-]?key|credential)`)

// checkConfigSecurity parses JSON/YAML configuration files and flags
// secret-shaped literal values.
func (v *SecurityValidator) checkConfigSecurity(files *domain.FileSet) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range files.ByCategory(domain.CategoryConfiguration) {
		var parsed map[string]any
		var err error
		switch filepath.Ext(f.RelPath) {
		case ".json":
			err = json.Unmarshal([]byte(f.Content), &parsed)
		default:
			err = yaml.Unmarshal([]byte(f.Content), &parsed)
		}
		if err != nil {
			continue // unparseable config is not a security finding
		}
		for _, key := range findSecretValues(parsed, "") {
			details.Violations = append(details.Violations, domain.Violation{
				File: f.RelPath, Excerpt: key,
			})
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Config Security", Status: domain.StatusPass,
			Message: "no literal secrets in config files",
		}
	}
	details.Hint = "reference secrets from the environment, not config files"
	return domain.CheckResult{
		Name: "Config Security", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d config value(s) look like literal secrets", len(details.Violations)),
		Details: &details,
	}
}

// findSecretValues walks a parsed config map and returns dotted key paths
// whose values are real-looking secret strings.
func findSecretValues(m map[string]any, prefix string) []string {
	var out []string
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch val := value.(type) {
		case map[string]any:
			out = append(out, findSecretValues(val, path)...)
		case string:
			if secretKeyPattern.MatchString(key) && looksLikeRealSecret(val) {
				out = append(out, path)
			}
		}
	}
	return out
}

var placeholderValue = regexp.MustCompile(`(?i)^(?:\$\{.*\}|<.*>|your[-_].*|changeme|example.*|xxx+|\s*)$`)

func looksLikeRealSecret(value string) bool {
	return len(value) >= 8 && !placeholderValue.MatchString(value)
}

// packageManifest mirrors the dependency sections of package.json.
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// checkDependencySecurity flags known-problematic packages and wildcard
// version ranges in manifest files.
func (v *SecurityValidator) checkDependencySecurity(files *domain.FileSet) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range files.Files {
		if filepath.Base(f.RelPath) != "package.json" {
			continue
		}
		var manifest packageManifest
		if err := json.Unmarshal([]byte(f.Content), &manifest); err != nil {
			continue
		}
		for _, deps := range []map[string]string{manifest.Dependencies, manifest.DevDependencies} {
			for name, version := range deps {
				if reason, risky := analysis.RiskyDependencies[name]; risky {
					details.Violations = append(details.Violations, domain.Violation{
						File: f.RelPath, Excerpt: fmt.Sprintf("%s: %s", name, reason),
					})
				}
				if version == "*" || version == "latest" {
					details.Violations = append(details.Violations, domain.Violation{
						File: f.RelPath, Excerpt: fmt.Sprintf("%s uses wildcard version %q", name, version),
					})
				}
			}
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Dependency Security", Status: domain.StatusPass,
			Message: "no risky dependencies found",
		}
	}
	details.Hint = "pin versions and replace known-problematic packages"
	return domain.CheckResult{
		Name: "Dependency Security", Status: domain.StatusWarning,
		Message: fmt.Sprintf("%d risky dependency declaration(s)", len(details.Violations)),
		Details: &details,
	}
}

var envAssignment = regexp.MustCompile(`^\s*([A-Z][A-Z0-9_]*)\s*=\s*(.+)$`)

// checkEnvSecurity flags .env-style files that contain what look like
// real secret values rather than placeholders.
func (v *SecurityValidator) checkEnvSecurity(files *domain.FileSet) domain.CheckResult {
	details := domain.EvidenceDetails{}
	for _, f := range files.Files {
		base := filepath.Base(f.RelPath)
		if !strings.HasPrefix(base, ".env") || base == ".env.example" || base == ".env.sample" {
			continue
		}
		for i, line := range strings.Split(f.Content, "\n") {
			m := envAssignment.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			key, value := m[1], strings.Trim(strings.TrimSpace(m[2]), `"'`)
			if secretKeyPattern.MatchString(key) && looksLikeRealSecret(value) {
				details.Violations = append(details.Violations, domain.Violation{
					File: f.RelPath, Line: i + 1, Excerpt: key,
				})
			}
		}
	}
	if len(details.Violations) == 0 {
		return domain.CheckResult{
			Name: "Environment Security", Status: domain.StatusPass,
			Message: "no committed env files with real secrets",
		}
	}
	details.Hint = "keep real secret values out of committed env files"
	return domain.CheckResult{
		Name: "Environment Security", Status: domain.StatusFail,
		Message: fmt.Sprintf("%d env value(s) look like real secrets", len(details.Violations)),
		Details: &details,
	}
}

func hasRoutes(code []domain.FileRecord) bool {
	for _, f := range code {
		if len(analysis.ExtractRoutes(f.Content)) > 0 {
			return true
		}
	}
	return false
}

func projectMentions(files *domain.FileSet, needle string) bool {
	for _, f := range files.Files {
		if f.Category == domain.CategoryOther && !strings.Contains(f.RelPath, "package.json") {
			continue
		}
		if strings.Contains(strings.ToLower(f.Content), needle) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

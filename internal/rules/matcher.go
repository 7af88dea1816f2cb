// Package rules implements a static, first-match-wins rule matcher behind
// the RuleMatcher contract consumed by the rules decision source.
package rules

import (
	"context"
	"fmt"
	"path"
	"regexp"

	ignore "github.com/sabhiram/go-gitignore"

	config "github.com/toolwarden/cli/config"
	domain "github.com/toolwarden/cli/internal/domain"
)

// Matcher evaluates a fixed, ordered rule list. Rules are compiled once at
// construction; Evaluate is safe for concurrent use.
type Matcher struct {
	rules []compiledRule
}

type compiledRule struct {
	cfg     config.RuleConfig
	command *regexp.Regexp
	paths   *ignore.GitIgnore
}

// NewMatcher compiles the configured rules. A rule with an invalid command
// pattern or action type is rejected so misconfigurations surface at start
// rather than silently never matching.
func NewMatcher(cfg config.RulesConfig) (*Matcher, error) {
	m := &Matcher{}
	for _, rc := range cfg.Rules {
		if !validActionType(rc.Action.Type) {
			return nil, fmt.Errorf("%w: rule %s: unknown action type %q", domain.ErrInvalidRule, rc.ID, rc.Action.Type)
		}

		cr := compiledRule{cfg: rc}
		if rc.CommandPattern != "" {
			re, err := regexp.Compile(rc.CommandPattern)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %s: bad command pattern: %v", domain.ErrInvalidRule, rc.ID, err)
			}
			cr.command = re
		}
		if len(rc.Paths) > 0 {
			cr.paths = ignore.CompileIgnoreLines(rc.Paths...)
		}
		m.rules = append(m.rules, cr)
	}
	return m, nil
}

func validActionType(t string) bool {
	switch domain.RuleActionType(t) {
	case domain.RuleActionAllow, domain.RuleActionDeny, domain.RuleActionBlock,
		domain.RuleActionContinue, domain.RuleActionModify, domain.RuleActionWarn,
		domain.RuleActionPrompt:
		return true
	}
	return false
}

// Evaluate returns the first enabled rule whose conditions all hold.
func (m *Matcher) Evaluate(_ context.Context, ec *domain.EvaluationContext) (domain.RuleMatch, error) {
	for _, rule := range m.rules {
		if !rule.cfg.IsEnabled() {
			continue
		}
		if !rule.matches(ec) {
			continue
		}

		return domain.RuleMatch{
			Matched: true,
			Action: &domain.RuleAction{
				Type:          domain.RuleActionType(rule.cfg.Action.Type),
				Reason:        rule.cfg.Action.Reason,
				SystemMessage: rule.cfg.Action.SystemMessage,
				Modifications: rule.cfg.Action.Modifications,
			},
			Rule: &domain.MatchedRule{
				ID:      rule.cfg.ID,
				Name:    rule.cfg.Name,
				RuleSet: rule.cfg.RuleSet,
			},
		}, nil
	}
	return domain.RuleMatch{}, nil
}

func (r *compiledRule) matches(ec *domain.EvaluationContext) bool {
	if !matchesAny(r.cfg.HookTypes, string(ec.HookType)) {
		return false
	}
	if !matchesAny(r.cfg.Tools, ec.ToolName) {
		return false
	}
	if !matchesAny(r.cfg.PermissionModes, ec.PermissionMode) {
		return false
	}
	if r.command != nil && !r.command.MatchString(stringInput(ec, "command")) {
		return false
	}
	if r.paths != nil {
		filePath := stringInput(ec, "file_path")
		if filePath == "" {
			filePath = stringInput(ec, "path")
		}
		if filePath == "" || !r.paths.MatchesPath(filePath) {
			return false
		}
	}
	return true
}

// matchesAny matches a value against exact names or glob patterns. An empty
// pattern list matches everything.
func matchesAny(patterns []string, value string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if p == value {
			return true
		}
		if ok, err := path.Match(p, value); err == nil && ok {
			return true
		}
	}
	return false
}

func stringInput(ec *domain.EvaluationContext, key string) string {
	if ec.ToolInput == nil {
		return ""
	}
	if s, ok := ec.ToolInput[key].(string); ok {
		return s
	}
	return ""
}

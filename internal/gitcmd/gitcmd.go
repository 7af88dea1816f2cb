// Package gitcmd classifies shell commands and checks the test-gate marker
// consumed by the test-gate decision source.
package gitcmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	config "github.com/toolwarden/cli/config"
)

// Tokenize splits a shell command into tokens, honoring single quotes,
// double quotes and backslash escapes. It does not expand variables or
// interpret operators; `&&` and `;` come back as plain tokens, which is
// enough for subcommand detection.
func Tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	inToken := false

	var quote byte // 0, '\'' or '"'
	for i := 0; i < len(command); i++ {
		c := command[i]

		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case quote == '"':
			if c == '"' {
				quote = 0
			} else if c == '\\' && i+1 < len(command) {
				i++
				current.WriteByte(command[i])
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == '\\' && i+1 < len(command):
			i++
			current.WriteByte(command[i])
			inToken = true
		case c == ' ' || c == '\t' || c == '\n':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteByte(c)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// Git global flags that consume the following token, so the token after
// them is not the subcommand.
var gitValueFlags = map[string]bool{
	"-C":          true,
	"-c":          true,
	"--git-dir":   true,
	"--work-tree": true,
	"--namespace": true,
}

// IsGitCommit reports whether the command runs `git commit`, tolerating
// interspersed global flags and command chaining (`cd x && git commit`).
func IsGitCommit(command string) bool {
	tokens := Tokenize(command)

	for i, tok := range tokens {
		if tok != "git" {
			continue
		}
		if subcommand(tokens[i+1:]) == "commit" {
			return true
		}
	}
	return false
}

// subcommand finds the first token that is not a flag or a flag value.
func subcommand(tokens []string) string {
	skipNext := false
	for _, tok := range tokens {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(tok, "-") {
			if gitValueFlags[tok] {
				skipNext = true
			}
			continue
		}
		return tok
	}
	return ""
}

// GateStatus is the test-gate checker's answer.
type GateStatus struct {
	Allowed bool
	Reason  string
}

// CheckTestGate checks whether the pass-marker file exists and is younger
// than the configured max age. The returned reason is user-facing.
func CheckTestGate(cfg config.TestGateConfig) GateStatus {
	info, err := os.Stat(cfg.MarkerPath)
	if err != nil {
		return GateStatus{
			Allowed: false,
			Reason:  fmt.Sprintf("Tests must pass before committing: no test marker found at %s", cfg.MarkerPath),
		}
	}

	age := time.Since(info.ModTime())
	maxAge := time.Duration(cfg.MaxAgeSeconds) * time.Second
	if maxAge > 0 && age > maxAge {
		return GateStatus{
			Allowed: false,
			Reason: fmt.Sprintf("Tests must pass before committing: last passing run is %ds old (max %ds)",
				int(age.Seconds()), cfg.MaxAgeSeconds),
		}
	}

	return GateStatus{Allowed: true}
}

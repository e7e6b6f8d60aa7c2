// Package message defines the commit message model: the closed set of
// conventional commit types, title/body invariants, reply decoding, and the
// language-purity validator.
package message

import (
	"fmt"
	"strings"
)

// TitleMaxLen is the maximum accepted title length, in characters.
const TitleMaxLen = 50

// CommitType represents a conventional commit type.
type CommitType string

const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypePerf     CommitType = "perf"
	TypeTest     CommitType = "test"
	TypeChore    CommitType = "chore"
	TypeBuild    CommitType = "build"
	TypeCI       CommitType = "ci"
	TypeRevert   CommitType = "revert"
)

// Types lists every valid commit type, in conventional order.
var Types = []CommitType{
	TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor,
	TypePerf, TypeTest, TypeChore, TypeBuild, TypeCI, TypeRevert,
}

// ParseType returns the CommitType matching s, or an error when s is not a
// member of the closed set.
func ParseType(s string) (CommitType, error) {
	candidate := CommitType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range Types {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown commit type %q", s)
}

// CommitMessage is a validated commit message ready to persist.
type CommitMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Full renders the message in git's title-blank-line-body layout.
func (m CommitMessage) Full() string {
	if m.Body == "" {
		return m.Title
	}
	return m.Title + "\n\n" + m.Body
}

// TitleType extracts the commit type from a title of the form
// "type: text" or "type(scope): text". Returns an error when the title has
// no recognized type prefix.
func TitleType(title string) (CommitType, error) {
	idx := strings.Index(title, ":")
	if idx < 0 {
		return "", fmt.Errorf("title %q has no type prefix", title)
	}

	prefix := title[:idx]
	if open := strings.Index(prefix, "("); open >= 0 {
		if !strings.HasSuffix(prefix, ")") {
			return "", fmt.Errorf("title %q has a malformed scope", title)
		}
		prefix = prefix[:open]
	}

	return ParseType(prefix)
}

// CheckTitle verifies the title invariant: non-empty, at most TitleMaxLen
// characters, and carrying a valid type prefix.
func CheckTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("empty title")
	}
	if n := len([]rune(title)); n > TitleMaxLen {
		return fmt.Errorf("title is %d characters, maximum is %d", n, TitleMaxLen)
	}
	if _, err := TitleType(title); err != nil {
		return err
	}
	return nil
}

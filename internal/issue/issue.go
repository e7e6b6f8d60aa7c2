// Package issue fetches GitHub issue context so a generated commit can
// reference the issue it addresses. Fetch failures degrade to a warning at
// the call site; they never abort message generation.
package issue

import (
	"context"
	"fmt"

	"github.com/google/go-github/v77/github"
)

// Reference is the issue context injected into the final prompt.
type Reference struct {
	Number int
	Title  string
	Labels []string
}

// Fetch retrieves an issue's title and labels. token may be empty for public
// repositories.
func Fetch(ctx context.Context, owner, repo string, number int, token string) (*Reference, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	iss, _, err := client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d from %s/%s: %w", number, owner, repo, err)
	}

	ref := &Reference{
		Number: number,
		Title:  iss.GetTitle(),
	}
	for _, label := range iss.Labels {
		ref.Labels = append(ref.Labels, label.GetName())
	}
	return ref, nil
}

// PromptInstruction renders the issue requirement appended to the final
// generation prompt.
func (r *Reference) PromptInstruction() string {
	return fmt.Sprintf(
		"Este commit está asociado al issue #%d (%q). El título del commit DEBE terminar con la referencia (#%d).",
		r.Number, r.Title, r.Number,
	)
}
